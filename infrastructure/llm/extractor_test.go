package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventlens-backend/domain/events"
	"eventlens-backend/pkg/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// completionServer fakes the chat-completions endpoint, returning the
// given content as the single choice.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		resp := map[string]interface{}{
			"model": "llama3-70b-8192",
			"choices": []map[string]interface{}{
				{
					"message":       map[string]string{"content": content},
					"finish_reason": "stop",
				},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func newTestExtractor(t *testing.T, serverURL string) *Extractor {
	t.Helper()
	client := NewClient(Config{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Timeout: 2 * time.Second,
	}, zap.NewNop())
	return NewExtractor(client, observability.NewMetrics("extractor_test"), zap.NewNop())
}

func TestExtract_WellFormedResponse(t *testing.T) {
	content := `{
		"topic": "terrorist attacks",
		"time_period": {"start_date": "2001-01-01", "end_date": "2001-12-31"},
		"locations": ["Middle East"],
		"actors": ["Al Qaeda"],
		"sentiment": "negative"
	}`
	server := completionServer(t, content)
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)

	filter := extractor.Extract(context.Background(), "terrorist attacks in the Middle East during 2001")

	assert.Equal(t, "terrorist attacks", filter.Topic)
	require.NotNil(t, filter.TimePeriod.StartDate)
	assert.Equal(t, 2001, filter.TimePeriod.StartDate.Year())
	require.NotNil(t, filter.TimePeriod.EndDate)
	assert.Equal(t, time.December, filter.TimePeriod.EndDate.Month())
	assert.Equal(t, []string{"Middle East"}, filter.Locations)
	assert.Equal(t, []string{"Al Qaeda"}, filter.Actors)
	assert.Equal(t, "negative", filter.Sentiment)
}

func TestExtract_JSONWrappedInCodeFence(t *testing.T) {
	content := "Here are the parameters:\n```json\n{\"topic\": \"floods\", \"locations\": [\"Pakistan\"], \"sentiment\": \"all\"}\n```\nLet me know if you need more."
	server := completionServer(t, content)
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)

	filter := extractor.Extract(context.Background(), "floods in Pakistan")

	assert.Equal(t, "floods", filter.Topic)
	assert.Equal(t, []string{"Pakistan"}, filter.Locations)
	assert.Equal(t, events.SentimentAll, filter.Sentiment)
}

func TestExtract_NotJSONFallsBackToDefault(t *testing.T) {
	server := completionServer(t, "not json")
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)

	filter := extractor.Extract(context.Background(), "show me protests")

	assert.Equal(t, events.DefaultFilter("show me protests"), filter)
}

func TestExtract_BadDateDropsOnlyThatField(t *testing.T) {
	content := `{"topic": "elections", "time_period": {"start_date": "sometime", "end_date": "2020-11-03"}, "sentiment": "neutral"}`
	server := completionServer(t, content)
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)

	filter := extractor.Extract(context.Background(), "elections")

	assert.Equal(t, "elections", filter.Topic)
	assert.Nil(t, filter.TimePeriod.StartDate)
	require.NotNil(t, filter.TimePeriod.EndDate)
	assert.Equal(t, "neutral", filter.Sentiment)
}

func TestExtract_ServerErrorFallsBackToDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	extractor := newTestExtractor(t, server.URL)

	filter := extractor.Extract(context.Background(), "anything at all")

	assert.Equal(t, events.DefaultFilter("anything at all"), filter)
}

func TestExtract_UnconfiguredClientFallsBackToDefault(t *testing.T) {
	client := NewClient(Config{}, zap.NewNop())
	extractor := NewExtractor(client, observability.NewMetrics("extractor_unconfigured_test"), zap.NewNop())

	filter := extractor.Extract(context.Background(), "who attacked whom")

	assert.Equal(t, events.DefaultFilter("who attacked whom"), filter)
}

func TestParseDate(t *testing.T) {
	d, ok := parseDate("2019-06-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2019, 6, 15, 0, 0, 0, 0, time.UTC), d)

	d, ok = parseDate("1990s")
	require.True(t, ok)
	assert.Equal(t, 1990, d.Year())

	_, ok = parseDate("null")
	assert.False(t, ok)

	_, ok = parseDate("last tuesday")
	assert.False(t, ok)
}

func TestFirstJSONObject(t *testing.T) {
	raw, ok := firstJSONObject(`prefix {"a": {"b": "}"}} suffix`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": "}"}}`, raw)

	_, ok = firstJSONObject("no braces here")
	assert.False(t, ok)

	_, ok = firstJSONObject(`{"unterminated": true`)
	assert.False(t, ok)
}
