// Package geocode resolves place names to coordinates via the OSM
// Nominatim API, with client-side rate limiting and an in-memory cache.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org"
	defaultUserAgent = "eventlens-backend/1.0"
	defaultTimeout   = 10 * time.Second
)

// NominatimClient geocodes place names against a Nominatim endpoint.
// The usage policy for the public instance allows at most one request
// per second, enforced here with a rate limiter shared by all callers.
type NominatimClient struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// Config holds the tunable settings for the Nominatim client.
type Config struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

func NewNominatimClient(cfg Config, logger *zap.Logger) *NominatimClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &NominatimClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		logger:     logger,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a place name to coordinates. A false result means the
// place could not be resolved; lookup failures are logged, not returned,
// because a missing marker never fails a visualization.
func (c *NominatimClient) Geocode(ctx context.Context, name, country string) (float64, float64, bool) {
	query := name
	if country != "" {
		query = name + ", " + country
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return 0, 0, false
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, false
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("geocode request failed", zap.String("place", query), zap.Error(err))
		return 0, 0, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("geocode request rejected",
			zap.String("place", query),
			zap.Int("status", resp.StatusCode))
		return 0, 0, false
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		c.logger.Warn("geocode response unreadable", zap.String("place", query), zap.Error(err))
		return 0, 0, false
	}
	if len(results) == 0 {
		return 0, 0, false
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		c.logger.Warn("geocode response has malformed coordinates",
			zap.String("place", query))
		return 0, 0, false
	}

	return lat, lon, true
}

func cacheKey(name, country string) string {
	return fmt.Sprintf("%s, %s", name, country)
}
