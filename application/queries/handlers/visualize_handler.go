package handlers

import (
	"context"
	"time"

	"eventlens-backend/application/queries"
	"eventlens-backend/application/services/maprenderer"
	"eventlens-backend/pkg/errors"
	"eventlens-backend/pkg/observability"

	"go.uber.org/zap"
)

// VisualizeHandler answers a question and renders the matching events as
// an embeddable Leaflet map.
type VisualizeHandler struct {
	answers  *AnswerHandler
	renderer *maprenderer.Renderer
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewVisualizeHandler creates a new visualize handler
func NewVisualizeHandler(
	answers *AnswerHandler,
	renderer *maprenderer.Renderer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *VisualizeHandler {
	return &VisualizeHandler{
		answers:  answers,
		renderer: renderer,
		metrics:  metrics,
		logger:   logger,
	}
}

// Handle executes the visualize query
func (h *VisualizeHandler) Handle(ctx context.Context, query queries.VisualizeQuery) (*queries.VisualizeResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	answer, err := h.answers.Handle(ctx, queries.AnswerQuery{Text: query.Text})
	if err != nil {
		return nil, err
	}

	renderStart := time.Now()
	html, err := h.renderer.Render(ctx, answer.Events)
	h.metrics.ObserveStage("render_map", renderStart)
	if err != nil {
		h.logger.Error("Map rendering failed",
			zap.String("query", query.Text),
			zap.Error(err),
		)
		return nil, errors.Wrap(err, "failed to render map")
	}

	h.logger.Info("Rendered event map",
		zap.String("query", query.Text),
		zap.Int("events", len(answer.Events)),
	)

	return &queries.VisualizeResult{
		Query:   query.Text,
		MapHTML: html,
		Stats:   answer.Stats,
	}, nil
}
