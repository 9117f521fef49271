package events

import "strings"

// Sentiment categorizes the reported tone of an event.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"

	// SentimentAll is only valid as a filter value, never on a record.
	SentimentAll = "all"
)

// Tone thresholds. Values at exactly +/-2.0 are neutral.
const (
	positiveToneThreshold = 2.0
	negativeToneThreshold = -2.0
)

// Classify maps a numeric tone score to a sentiment category.
// This is the only place sentiment is derived from tone.
func Classify(tone float64) Sentiment {
	switch {
	case tone > positiveToneThreshold:
		return SentimentPositive
	case tone < negativeToneThreshold:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// ParseSentiment normalizes a user- or model-supplied sentiment string.
// Anything unrecognized collapses to "all" so a bad extraction never
// filters out every event.
func ParseSentiment(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SentimentPositive):
		return string(SentimentPositive)
	case string(SentimentNegative):
		return string(SentimentNegative)
	case string(SentimentNeutral):
		return string(SentimentNeutral)
	default:
		return SentimentAll
	}
}
