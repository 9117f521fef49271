package services

import (
	"testing"

	"eventlens-backend/domain/events"

	"github.com/stretchr/testify/assert"
)

func TestSummarize_Empty(t *testing.T) {
	aggregator := NewStatsAggregator()

	summary := aggregator.Summarize(nil)

	assert.Equal(t, 0, summary.TotalEvents)
	assert.Equal(t, 0, summary.SentimentCounts["positive"])
	assert.Equal(t, 0, summary.SentimentCounts["neutral"])
	assert.Equal(t, 0, summary.SentimentCounts["negative"])
	assert.Equal(t, 0.0, summary.AvgTone)
	assert.Empty(t, summary.MostFrequentLabel)
	assert.Equal(t, 0, summary.TotalFatalities)
}

func TestSummarize(t *testing.T) {
	aggregator := NewStatsAggregator()

	records := []events.EventRecord{
		{Tone: 3.0, Fatalities: 5, Label: "Riot", Sentiment: events.Classify(3.0)},
		{Tone: -5.0, Fatalities: 2, Label: "Riot", Sentiment: events.Classify(-5.0)},
		{Tone: 0.0, Fatalities: 0, Label: "Protest", Sentiment: events.Classify(0.0)},
	}

	summary := aggregator.Summarize(records)

	assert.Equal(t, 3, summary.TotalEvents)
	assert.Equal(t, 1, summary.SentimentCounts["positive"])
	assert.Equal(t, 1, summary.SentimentCounts["neutral"])
	assert.Equal(t, 1, summary.SentimentCounts["negative"])
	assert.InDelta(t, -0.667, summary.AvgTone, 0.001)
	assert.Equal(t, "Riot", summary.MostFrequentLabel)
	assert.Equal(t, 7, summary.TotalFatalities)
}

func TestSummarize_LabelTieBreaksFirstSeen(t *testing.T) {
	aggregator := NewStatsAggregator()

	records := []events.EventRecord{
		{Label: "Protest", Sentiment: events.SentimentNeutral},
		{Label: "Riot", Sentiment: events.SentimentNeutral},
		{Label: "Riot", Sentiment: events.SentimentNeutral},
		{Label: "Protest", Sentiment: events.SentimentNeutral},
	}

	summary := aggregator.Summarize(records)

	assert.Equal(t, "Protest", summary.MostFrequentLabel)
}

func TestSummarize_MissingLabelsIgnored(t *testing.T) {
	aggregator := NewStatsAggregator()

	records := []events.EventRecord{
		{Label: "", Sentiment: events.SentimentNeutral},
		{Label: "", Sentiment: events.SentimentNeutral},
		{Label: "Strike", Sentiment: events.SentimentNeutral},
	}

	summary := aggregator.Summarize(records)

	assert.Equal(t, "Strike", summary.MostFrequentLabel)
}
