package services

import (
	"testing"

	"eventlens-backend/domain/events"
	"eventlens-backend/domain/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestNormalize_GraphShape(t *testing.T) {
	normalizer := NewResultNormalizer()

	result := graph.Result{
		Nodes: []graph.Node{
			{
				ID:          "Event/1001",
				Type:        graph.NodeTypeEvent,
				Date:        "2019-03-16",
				Description: "yellow vest protest turns violent",
				Label:       "14",
				Fatalities:  0,
				Tone:        -4.2,
			},
			{ID: "Actor/55", Type: graph.NodeTypeActor, Name: "PROTESTERS"},
			{ID: "Actor/56", Type: graph.NodeTypeActor, Name: "POLICE"},
			{
				ID:      "Location/7",
				Type:    graph.NodeTypeLocation,
				Name:    "Paris",
				Country: "France",
				Lat:     floatPtr(48.85),
				Lon:     floatPtr(2.35),
			},
			{ID: "Location/8", Type: graph.NodeTypeLocation, Name: "Lyon", Country: "France"},
		},
		Edges: []graph.Edge{
			{From: "Event/1001", To: "Actor/55", Type: graph.EdgeTypeActor},
			{From: "Event/1001", To: "Actor/56", Type: graph.EdgeTypeActor},
			{From: "Event/1001", To: "Location/7", Type: graph.EdgeTypeLocation},
			{From: "Event/1001", To: "Location/8", Type: graph.EdgeTypeLocation},
		},
	}

	records := normalizer.Normalize(result)

	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "Event/1001", record.EventID)
	assert.Equal(t, []string{"PROTESTERS", "POLICE"}, record.Actors)
	// Both locations survive, including the one without coordinates.
	require.Len(t, record.Locations, 2)
	assert.Equal(t, "Paris", record.Locations[0].Name)
	assert.True(t, record.Locations[0].HasCoordinates())
	assert.Equal(t, "Lyon", record.Locations[1].Name)
	assert.False(t, record.Locations[1].HasCoordinates())
	assert.Equal(t, events.SentimentNegative, record.Sentiment)
	assert.Equal(t, "PROTEST", record.Label)
}

func TestNormalize_ActorAndLocationSharingID(t *testing.T) {
	normalizer := NewResultNormalizer()

	// Actor and location IDs are name slugs, so actor "FRANCE" and
	// location "France" both arrive with ID "france". Neither may
	// shadow the other.
	result := graph.Result{
		Nodes: []graph.Node{
			{ID: "Event/1", Type: graph.NodeTypeEvent, Tone: -3.0},
			{ID: "france", Type: graph.NodeTypeActor, Name: "FRANCE"},
			{ID: "france", Type: graph.NodeTypeLocation, Name: "France", Country: "France"},
		},
		Edges: []graph.Edge{
			{From: "Event/1", To: "france", Type: graph.EdgeTypeActor},
			{From: "Event/1", To: "france", Type: graph.EdgeTypeLocation},
		},
	}

	records := normalizer.Normalize(result)

	require.Len(t, records, 1)
	assert.Equal(t, []string{"FRANCE"}, records[0].Actors)
	require.Len(t, records[0].Locations, 1)
	assert.Equal(t, "France", records[0].Locations[0].Name)
}

func TestNormalize_SkipsMalformedRecords(t *testing.T) {
	normalizer := NewResultNormalizer()

	result := graph.Result{
		Nodes: []graph.Node{
			{ID: "", Type: graph.NodeTypeEvent, Description: "event with no id"},
			{ID: "Event/2", Type: graph.NodeTypeEvent, Tone: 3.5},
		},
	}

	records := normalizer.Normalize(result)

	require.Len(t, records, 1)
	assert.Equal(t, "Event/2", records[0].EventID)
	assert.Equal(t, events.SentimentPositive, records[0].Sentiment)
}

func TestNormalize_FlatShape(t *testing.T) {
	normalizer := NewResultNormalizer()

	result := graph.Result{
		Rows: []graph.Row{
			{
				EventID:     "row-1",
				Date:        "2001-09-11",
				Description: "coordinated attack",
				Label:       "ASSAULT",
				Fatalities:  2977,
				Tone:        -9.1,
				Actors:      []string{"GROUP A"},
				Locations: []graph.RowLocation{
					{Name: "New York", Country: "United States", Lat: floatPtr(40.7), Lon: floatPtr(-74.0)},
				},
			},
			{EventID: "row-2", Tone: 0.0},
		},
	}

	records := normalizer.Normalize(result)

	require.Len(t, records, 2)
	assert.Equal(t, events.SentimentNegative, records[0].Sentiment)
	assert.Equal(t, 2977, records[0].Fatalities)
	require.Len(t, records[0].Locations, 1)
	assert.Equal(t, "New York", records[0].Locations[0].Name)
	// Missing optional fields stay empty rather than failing.
	assert.Empty(t, records[1].Actors)
	assert.Empty(t, records[1].Locations)
	assert.Equal(t, events.SentimentNeutral, records[1].Sentiment)
}

func TestFilterBySentiment(t *testing.T) {
	normalizer := NewResultNormalizer()

	records := []events.EventRecord{
		{EventID: "a", Sentiment: events.SentimentPositive},
		{EventID: "b", Sentiment: events.SentimentNegative},
		{EventID: "c", Sentiment: events.SentimentNeutral},
	}

	negative := normalizer.FilterBySentiment(records, "Negative")
	require.Len(t, negative, 1)
	assert.Equal(t, "b", negative[0].EventID)

	all := normalizer.FilterBySentiment(records, "all")
	assert.Len(t, all, 3)

	// Unrecognized categories keep everything instead of dropping everything.
	unknown := normalizer.FilterBySentiment(records, "mixed")
	assert.Len(t, unknown, 3)
}
