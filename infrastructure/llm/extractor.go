package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"eventlens-backend/domain/events"
	"eventlens-backend/pkg/observability"

	"go.uber.org/zap"
)

const extractionSystemPrompt = "You extract search parameters from natural language queries about world events."

const extractionTemplate = `The user has provided the following query about world events: %q

Please extract the following information:
1. Topic: the main topic or event being asked about.
2. Time period: start and end dates if a time period is mentioned.
3. Locations: any specific locations mentioned.
4. Actors: any specific actors (people, organizations, countries) mentioned.
5. Sentiment: whether the query asks for positive, negative or neutral events.

Format the output as a JSON object with the following structure:
{
    "topic": "extracted topic",
    "time_period": {
        "start_date": "YYYY-MM-DD or null",
        "end_date": "YYYY-MM-DD or null"
    },
    "locations": ["location1", "location2"],
    "actors": ["actor1", "actor2"],
    "sentiment": "positive/negative/neutral/all"
}

Return only the JSON object without any explanations.`

// extractedParams is the wire shape the model is asked to produce. All
// fields are loosely typed so a partially valid response can be salvaged
// field by field.
type extractedParams struct {
	Topic      string `json:"topic"`
	TimePeriod struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	} `json:"time_period"`
	Locations []string `json:"locations"`
	Actors    []string `json:"actors"`
	Sentiment string   `json:"sentiment"`
}

// Extractor asks the model to turn free text into a StructuredFilter.
// It never surfaces an error: any failure degrades to the default filter.
type Extractor struct {
	client  *Client
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewExtractor creates a new parameter extractor
func NewExtractor(client *Client, metrics *observability.Metrics, logger *zap.Logger) *Extractor {
	return &Extractor{
		client:  client,
		metrics: metrics,
		logger:  logger,
	}
}

// Extract implements ports.ParameterExtractor.
func (e *Extractor) Extract(ctx context.Context, query string) events.StructuredFilter {
	completion, err := e.client.Complete(ctx, extractionSystemPrompt, fmt.Sprintf(extractionTemplate, query), 0, 300)
	if err != nil {
		e.metrics.ExtractionFailures.Inc()
		e.logger.Warn("Parameter extraction failed, using default filter",
			zap.String("query", query),
			zap.Error(err),
		)
		return events.DefaultFilter(query)
	}

	raw, ok := firstJSONObject(completion)
	if !ok {
		e.metrics.ExtractionFailures.Inc()
		e.logger.Warn("No JSON object in model output, using default filter",
			zap.String("query", query),
		)
		return events.DefaultFilter(query)
	}

	var params extractedParams
	if err := json.Unmarshal([]byte(raw), &params); err != nil {
		e.metrics.ExtractionFailures.Inc()
		e.logger.Warn("Malformed JSON in model output, using default filter",
			zap.String("query", query),
			zap.Error(err),
		)
		return events.DefaultFilter(query)
	}

	return e.coerce(query, params)
}

// coerce builds a filter from a parsed response, degrading field by
// field: a bad date drops only that date, never the whole filter.
func (e *Extractor) coerce(query string, params extractedParams) events.StructuredFilter {
	filter := events.DefaultFilter(query)

	if topic := strings.TrimSpace(params.Topic); topic != "" {
		filter.Topic = topic
	}

	if start, ok := parseDate(params.TimePeriod.StartDate); ok {
		filter.TimePeriod.StartDate = &start
	} else if params.TimePeriod.StartDate != "" && params.TimePeriod.StartDate != "null" {
		e.logger.Debug("Dropping unparseable start date",
			zap.String("value", params.TimePeriod.StartDate),
		)
	}
	if end, ok := parseDate(params.TimePeriod.EndDate); ok {
		filter.TimePeriod.EndDate = &end
	} else if params.TimePeriod.EndDate != "" && params.TimePeriod.EndDate != "null" {
		e.logger.Debug("Dropping unparseable end date",
			zap.String("value", params.TimePeriod.EndDate),
		)
	}

	filter.Locations = cleanTerms(params.Locations)
	filter.Actors = cleanTerms(params.Actors)
	filter.Sentiment = events.ParseSentiment(params.Sentiment)

	return filter
}

// dateLayouts accepted from the model, most to least specific. A bare
// year maps to January 1st, which is the right bound for "during 2001"
// style start dates.
var dateLayouts = []string{"2006-01-02", "2006-01", "2006"}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "null") {
		return time.Time{}, false
	}
	// Decade shorthand like "1990s".
	value = strings.TrimSuffix(strings.TrimSuffix(value, "s"), "'")
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func cleanTerms(terms []string) []string {
	cleaned := make([]string, 0, len(terms))
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			cleaned = append(cleaned, term)
		}
	}
	return cleaned
}

// firstJSONObject locates the first balanced JSON object in free text.
// Models often wrap the object in prose or code fences; both are handled
// by scanning for brace balance outside string literals.
func firstJSONObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
