package handlers

import (
	"context"

	"eventlens-backend/application/ports"
	"eventlens-backend/application/queries"
	"eventlens-backend/domain/services"
	"eventlens-backend/pkg/errors"

	"go.uber.org/zap"
)

// GetEventHandler serves the event-detail view: one event with its linked
// actors and locations plus a generated prose summary.
type GetEventHandler struct {
	store      ports.EventStore
	summarizer ports.EventSummarizer
	normalizer *services.ResultNormalizer
	logger     *zap.Logger
}

// NewGetEventHandler creates a new event detail handler
func NewGetEventHandler(
	store ports.EventStore,
	summarizer ports.EventSummarizer,
	normalizer *services.ResultNormalizer,
	logger *zap.Logger,
) *GetEventHandler {
	return &GetEventHandler{
		store:      store,
		summarizer: summarizer,
		normalizer: normalizer,
		logger:     logger,
	}
}

// Handle executes the event detail query
func (h *GetEventHandler) Handle(ctx context.Context, query queries.GetEventQuery) (*queries.GetEventResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	raw, err := h.store.GetEvent(ctx, query.EventID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, err
		}
		h.logger.Error("Failed to load event",
			zap.String("eventID", query.EventID),
			zap.Error(err),
		)
		return nil, errors.NewDatabaseError("get event", err)
	}

	records := h.normalizer.Normalize(raw)
	if len(records) == 0 {
		return nil, errors.NewNotFoundError("event")
	}

	record := records[0]
	summary := h.summarizer.Summarize(ctx, record)

	return &queries.GetEventResult{
		Event:   record,
		Summary: summary,
	}, nil
}
