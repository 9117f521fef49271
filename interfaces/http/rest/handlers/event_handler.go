package handlers

import (
	"net/http"

	"eventlens-backend/application/queries"
	querybus "eventlens-backend/application/queries/bus"
	"eventlens-backend/pkg/common"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// EventHandler handles event detail HTTP requests
type EventHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// GetEvent handles GET /events/{eventID}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventID")

	result, err := h.queryBus.Ask(r.Context(), queries.GetEventQuery{EventID: eventID})
	if err != nil {
		h.logger.Warn("Event lookup failed",
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
