package handlers

import (
	"context"
	"testing"

	"eventlens-backend/application/queries"
	"eventlens-backend/application/services/maprenderer"
	"eventlens-backend/domain/events"
	"eventlens-backend/domain/graph"
	"eventlens-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockGeocoder struct {
	mock.Mock
}

func (m *mockGeocoder) Geocode(ctx context.Context, name, country string) (float64, float64, bool) {
	args := m.Called(ctx, name, country)
	return args.Get(0).(float64), args.Get(1).(float64), args.Bool(2)
}

func newVisualizeHandler(extractor *mockExtractor, store *mockEventStore, geocoder *mockGeocoder) *VisualizeHandler {
	logger := zap.NewNop()
	return NewVisualizeHandler(
		newAnswerHandler(extractor, store),
		maprenderer.NewRenderer(geocoder, logger),
		observability.NewMetrics("eventlens_test"),
		logger,
	)
}

func TestVisualizeHandler_Handle_RendersMatchingEvents(t *testing.T) {
	ctx := context.Background()
	extractor := new(mockExtractor)
	store := new(mockEventStore)
	geocoder := new(mockGeocoder)

	lat, lon := 48.85, 2.35
	filter := events.StructuredFilter{Topic: "protests", Sentiment: events.SentimentAll}
	extractor.On("Extract", mock.Anything, "protests in Paris").Return(filter)
	store.On("QueryEvents", mock.Anything, filter).Return(graph.Result{
		Nodes: []graph.Node{
			{ID: "Event/1", Type: graph.NodeTypeEvent, Label: "Protest", Tone: -3.0},
			{ID: "Location/paris", Type: graph.NodeTypeLocation, Name: "Paris", Country: "France", Lat: &lat, Lon: &lon},
		},
		Edges: []graph.Edge{
			{From: "Event/1", To: "Location/paris", Type: graph.EdgeTypeLocation},
		},
	}, nil)

	handler := newVisualizeHandler(extractor, store, geocoder)

	result, err := handler.Handle(ctx, queries.VisualizeQuery{Text: "protests in Paris"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "protests in Paris", result.Query)
	assert.Contains(t, result.MapHTML, "48.85")
	assert.Contains(t, result.MapHTML, `"color":"red"`)
	assert.Equal(t, 1, result.Stats.TotalEvents)
	geocoder.AssertNotCalled(t, "Geocode", mock.Anything, mock.Anything, mock.Anything)
}

func TestVisualizeHandler_Handle_EmptyResultStillRenders(t *testing.T) {
	ctx := context.Background()
	extractor := new(mockExtractor)
	store := new(mockEventStore)

	filter := events.DefaultFilter("anything")
	extractor.On("Extract", mock.Anything, "anything").Return(filter)
	store.On("QueryEvents", mock.Anything, filter).Return(graph.Result{}, nil)

	handler := newVisualizeHandler(extractor, store, new(mockGeocoder))

	result, err := handler.Handle(ctx, queries.VisualizeQuery{Text: "anything"})

	require.NoError(t, err)
	assert.Contains(t, result.MapHTML, "var markers = [];")
	assert.Equal(t, 0, result.Stats.TotalEvents)
}

func TestVisualizeHandler_Handle_InvalidQuery(t *testing.T) {
	handler := newVisualizeHandler(new(mockExtractor), new(mockEventStore), new(mockGeocoder))

	_, err := handler.Handle(context.Background(), queries.VisualizeQuery{Text: "   "})

	assert.Error(t, err)
}
