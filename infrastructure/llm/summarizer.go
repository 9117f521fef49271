package llm

import (
	"context"
	"fmt"
	"strings"

	"eventlens-backend/domain/events"

	"go.uber.org/zap"
)

const summarySystemPrompt = "You generate concise summaries of world events."

const summaryTemplate = `Provide a brief summary of the following event:

Event: %s
Date: %s
Description: %s
Actors: %s
Locations: %s
Fatalities: %d
Sentiment: %s

Create a concise 2-3 sentence summary that explains what happened, who was involved, and the outcome.`

// Summarizer generates a short prose summary for one event. Failures
// degrade to a deterministic sentence built from the record itself.
type Summarizer struct {
	client *Client
	logger *zap.Logger
}

// NewSummarizer creates a new event summarizer
func NewSummarizer(client *Client, logger *zap.Logger) *Summarizer {
	return &Summarizer{
		client: client,
		logger: logger,
	}
}

// Summarize implements ports.EventSummarizer.
func (s *Summarizer) Summarize(ctx context.Context, record events.EventRecord) string {
	prompt := fmt.Sprintf(summaryTemplate,
		record.Label,
		record.Date,
		record.Description,
		strings.Join(record.Actors, ", "),
		locationNames(record.Locations),
		record.Fatalities,
		record.Sentiment,
	)

	summary, err := s.client.Complete(ctx, summarySystemPrompt, prompt, 0.7, 200)
	if err != nil {
		s.logger.Warn("Summary generation failed, using fallback",
			zap.String("eventID", record.EventID),
			zap.Error(err),
		)
		return fallbackSummary(record)
	}

	return strings.TrimSpace(summary)
}

func locationNames(locations []events.Location) string {
	names := make([]string, 0, len(locations))
	for _, loc := range locations {
		if loc.Name != "" {
			names = append(names, loc.Name)
		}
	}
	return strings.Join(names, ", ")
}

func fallbackSummary(record events.EventRecord) string {
	place := "an unknown location"
	if len(record.Locations) > 0 && record.Locations[0].Name != "" {
		place = record.Locations[0].Name
	}
	when := record.Date
	if when == "" {
		when = "an unknown date"
	}
	return fmt.Sprintf("On %s, a %s event occurred in %s.", when, strings.ToLower(record.Label), place)
}
