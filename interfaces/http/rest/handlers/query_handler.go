package handlers

import (
	"net/http"

	"eventlens-backend/application/queries"
	querybus "eventlens-backend/application/queries/bus"
	"eventlens-backend/pkg/common"
	"eventlens-backend/pkg/errors"
	"eventlens-backend/pkg/utils"

	"go.uber.org/zap"
)

const maxQueryBodyBytes = 1 << 16

// QueryHandler handles natural-language query HTTP requests
type QueryHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewQueryHandler creates a new query handler
func NewQueryHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *QueryHandler {
	return &QueryHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// QueryRequest represents the request body for a natural-language query
type QueryRequest struct {
	Query string `json:"query" validate:"required,max=2000"`
}

// Answer handles POST /query
func (h *QueryHandler) Answer(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.AnswerQuery{Text: req.Query})
	if err != nil {
		h.logger.Error("Answer query failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// Visualize handles POST /visualize
func (h *QueryHandler) Visualize(w http.ResponseWriter, r *http.Request) {
	req, ok := h.parseRequest(w, r)
	if !ok {
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.VisualizeQuery{Text: req.Query})
	if err != nil {
		h.logger.Error("Visualize query failed", zap.Error(err))
		common.RespondAppError(w, err)
		return
	}

	vis, ok := result.(*queries.VisualizeResult)
	if !ok {
		common.RespondAppError(w, errors.NewInternalError("unexpected visualize result"))
		return
	}

	// The map is served as a directly embeddable document, not wrapped
	// in the JSON envelope.
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(vis.MapHTML)); err != nil {
		h.logger.Warn("Failed to write map response", zap.Error(err))
	}
}

func (h *QueryHandler) parseRequest(w http.ResponseWriter, r *http.Request) (QueryRequest, bool) {
	var req QueryRequest
	if err := common.ParseJSONBody(r, &req, maxQueryBodyBytes); err != nil {
		common.RespondAppError(w, errors.NewValidationError("invalid request body: "+err.Error()))
		return req, false
	}
	if err := utils.ValidateStruct(req); err != nil {
		common.RespondAppError(w, errors.NewValidationError(err.Error()))
		return req, false
	}
	return req, true
}
