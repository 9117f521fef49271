package events

// Location is a place linked to an event. Every field is optional:
// upstream data frequently carries a name without coordinates or a
// country without a resolvable name, and both must be tolerated.
type Location struct {
	Name    string   `json:"name,omitempty"`
	Country string   `json:"country,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lon     *float64 `json:"lon,omitempty"`
}

// HasCoordinates reports whether the location carries usable coordinates.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// EventRecord is the flattened representation of one event together with
// its linked actors and locations. Records are immutable after
// normalization; Sentiment is always derived from Tone via Classify and
// never read from the store.
type EventRecord struct {
	EventID     string                 `json:"event_id"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Label       string                 `json:"label"`
	Geo         map[string]interface{} `json:"geo,omitempty"`
	Fatalities  int                    `json:"fatalities"`
	Tone        float64                `json:"tone"`
	Actors      []string               `json:"actors"`
	Locations   []Location             `json:"locations"`
	Sentiment   Sentiment              `json:"sentiment"`
}

// StatsSummary aggregates a normalized result set. It is derived per
// query and never persisted.
type StatsSummary struct {
	TotalEvents       int            `json:"total_events"`
	SentimentCounts   map[string]int `json:"sentiment_counts"`
	AvgTone           float64        `json:"avg_tone"`
	MostFrequentLabel string         `json:"most_frequent_label,omitempty"`
	TotalFatalities   int            `json:"total_fatalities"`
}
