package events

import "time"

// TimePeriod bounds a date range. Either side may be open.
type TimePeriod struct {
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// StructuredFilter is the structured form of a free-text question,
// produced once per query by the parameter extractor and treated as
// immutable afterwards.
type StructuredFilter struct {
	Topic      string     `json:"topic"`
	TimePeriod TimePeriod `json:"time_period"`
	Locations  []string   `json:"locations"`
	Actors     []string   `json:"actors"`
	Sentiment  string     `json:"sentiment"`
}

// DefaultFilter is the fallback when extraction fails for any reason:
// the raw query text becomes the topic and nothing else is constrained.
func DefaultFilter(query string) StructuredFilter {
	return StructuredFilter{
		Topic:     query,
		Locations: []string{},
		Actors:    []string{},
		Sentiment: SentimentAll,
	}
}

// IsEmpty reports whether the filter constrains anything beyond the
// sentiment post-filter.
func (f StructuredFilter) IsEmpty() bool {
	return f.Topic == "" &&
		f.TimePeriod.StartDate == nil &&
		f.TimePeriod.EndDate == nil &&
		len(f.Locations) == 0 &&
		len(f.Actors) == 0
}
