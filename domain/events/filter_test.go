package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultFilter(t *testing.T) {
	filter := DefaultFilter("protests in france during 2019")

	assert.Equal(t, "protests in france during 2019", filter.Topic)
	assert.Nil(t, filter.TimePeriod.StartDate)
	assert.Nil(t, filter.TimePeriod.EndDate)
	assert.Empty(t, filter.Locations)
	assert.Empty(t, filter.Actors)
	assert.Equal(t, SentimentAll, filter.Sentiment)
}

func TestStructuredFilter_IsEmpty(t *testing.T) {
	assert.True(t, StructuredFilter{Sentiment: SentimentAll}.IsEmpty())

	start := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.False(t, StructuredFilter{TimePeriod: TimePeriod{StartDate: &start}}.IsEmpty())
	assert.False(t, StructuredFilter{Topic: "riots"}.IsEmpty())
	assert.False(t, StructuredFilter{Actors: []string{"UN"}}.IsEmpty())
}
