package handlers

import (
	"context"
	"time"

	"eventlens-backend/application/ports"
	"eventlens-backend/application/queries"
	"eventlens-backend/domain/graph"
	"eventlens-backend/domain/services"
	"eventlens-backend/pkg/observability"

	"go.uber.org/zap"
)

// AnswerHandler runs the full query pipeline: parameter extraction, graph
// query, normalization, sentiment post-filter and statistics. Every
// external failure degrades to a narrower result instead of failing the
// request, so the handler is total.
type AnswerHandler struct {
	extractor    ports.ParameterExtractor
	store        ports.EventStore
	normalizer   *services.ResultNormalizer
	aggregator   *services.StatsAggregator
	storeTimeout time.Duration
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(
	extractor ports.ParameterExtractor,
	store ports.EventStore,
	normalizer *services.ResultNormalizer,
	aggregator *services.StatsAggregator,
	storeTimeout time.Duration,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *AnswerHandler {
	if storeTimeout <= 0 {
		storeTimeout = 15 * time.Second
	}
	return &AnswerHandler{
		extractor:    extractor,
		store:        store,
		normalizer:   normalizer,
		aggregator:   aggregator,
		storeTimeout: storeTimeout,
		metrics:      metrics,
		logger:       logger,
	}
}

// Handle executes the answer query
func (h *AnswerHandler) Handle(ctx context.Context, query queries.AnswerQuery) (*queries.AnswerResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	// Stage 1: extract a structured filter. The extractor handles its own
	// failures and falls back to the default filter internally.
	extractStart := time.Now()
	filter := h.extractor.Extract(ctx, query.Text)
	h.metrics.ObserveStage("extract", extractStart)

	h.logger.Info("Extracted query parameters",
		zap.String("topic", filter.Topic),
		zap.Strings("actors", filter.Actors),
		zap.Strings("locations", filter.Locations),
		zap.String("sentiment", filter.Sentiment),
	)

	// Stage 2: query the graph store under its own bounded timeout. Store
	// failure degrades to an empty event list, never to a request failure.
	storeCtx, cancel := context.WithTimeout(ctx, h.storeTimeout)
	defer cancel()

	queryStart := time.Now()
	raw, err := h.store.QueryEvents(storeCtx, filter)
	h.metrics.ObserveStage("store_query", queryStart)
	if err != nil {
		h.metrics.StoreFailures.Inc()
		h.logger.Error("Graph store query failed, degrading to empty result",
			zap.String("query", query.Text),
			zap.Error(err),
		)
		raw = graph.Result{}
	}

	// Stage 3: flatten, post-filter, aggregate.
	normalizeStart := time.Now()
	records := h.normalizer.Normalize(raw)
	records = h.normalizer.FilterBySentiment(records, filter.Sentiment)
	stats := h.aggregator.Summarize(records)
	h.metrics.ObserveStage("normalize", normalizeStart)

	h.metrics.QueriesAnswered.Inc()
	h.metrics.EventsReturned.Observe(float64(len(records)))

	h.logger.Info("Answered query",
		zap.String("query", query.Text),
		zap.Int("events", len(records)),
		zap.Float64("avgTone", stats.AvgTone),
	)

	return &queries.AnswerResult{
		Query:  query.Text,
		Filter: filter,
		Events: records,
		Stats:  stats,
	}, nil
}
