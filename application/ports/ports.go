package ports

import (
	"context"

	"eventlens-backend/domain/events"
	"eventlens-backend/domain/graph"
)

// ParameterExtractor turns a free-text question into a structured filter.
// This is a port in hexagonal architecture - the application doesn't know
// about the implementation.
type ParameterExtractor interface {
	// Extract never returns an error: any failure (network, malformed
	// model output, timeout) degrades to the default filter for the query.
	Extract(ctx context.Context, query string) events.StructuredFilter
}

// EventStore defines the read interface over the graph-shaped event store.
type EventStore interface {
	// QueryEvents runs the translated filter against the store and
	// returns the matching subgraph (events with their actor and
	// location edges), newest first, capped at the store's result limit.
	QueryEvents(ctx context.Context, filter events.StructuredFilter) (graph.Result, error)

	// GetEvent retrieves a single event with its edges.
	GetEvent(ctx context.Context, eventID string) (graph.Result, error)
}

// EventWriter defines the write interface over the graph-shaped event
// store, used by the ingestion path.
type EventWriter interface {
	// PutEvent stores an event node and its actor and location edges.
	// Writing the same event again overwrites its items.
	PutEvent(ctx context.Context, record events.EventRecord) error
}

// EventSummarizer produces a short prose summary of one event.
type EventSummarizer interface {
	// Summarize degrades to a deterministic fallback sentence on failure.
	Summarize(ctx context.Context, record events.EventRecord) string
}

// Geocoder resolves a place name to coordinates.
type Geocoder interface {
	// Geocode returns ok=false when the place cannot be resolved;
	// resolution failure is never an error.
	Geocode(ctx context.Context, name, country string) (lat, lon float64, ok bool)
}
