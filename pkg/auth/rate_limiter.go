package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter defines the interface for rate limiting
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}

// KeyedRateLimiter keeps one token bucket per key. Idle buckets are
// dropped by a background sweep so the map stays bounded.
type KeyedRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*keyedEntry
	limit    rate.Limit
	burst    int
}

type keyedEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyedRateLimiter allows requestsPerMinute requests per key.
func NewKeyedRateLimiter(requestsPerMinute int) *KeyedRateLimiter {
	l := &KeyedRateLimiter{
		limiters: make(map[string]*keyedEntry),
		limit:    rate.Every(time.Minute / time.Duration(requestsPerMinute)),
		burst:    requestsPerMinute,
	}
	go l.cleanup()
	return l
}

// Allow reports whether the request identified by key may proceed.
func (l *KeyedRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	entry, exists := l.limiters[key]
	if !exists {
		entry = &keyedEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = entry
	}
	entry.lastSeen = time.Now()
	l.mu.Unlock()

	return entry.limiter.Allow(), nil
}

// Reset clears the bucket for a key.
func (l *KeyedRateLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.limiters, key)
	return nil
}

func (l *KeyedRateLimiter) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		cutoff := time.Now().Add(-10 * time.Minute)
		for key, entry := range l.limiters {
			if entry.lastSeen.Before(cutoff) {
				delete(l.limiters, key)
			}
		}
		l.mu.Unlock()
	}
}

// IPRateLimiter rate limits by client IP
type IPRateLimiter struct {
	*KeyedRateLimiter
}

// NewIPRateLimiter creates an IP-based rate limiter
func NewIPRateLimiter(requestsPerMinute int) *IPRateLimiter {
	return &IPRateLimiter{NewKeyedRateLimiter(requestsPerMinute)}
}

// UserRateLimiter rate limits by authenticated user
type UserRateLimiter struct {
	*KeyedRateLimiter
}

// NewUserRateLimiter creates a user-based rate limiter
func NewUserRateLimiter(requestsPerMinute int) *UserRateLimiter {
	return &UserRateLimiter{NewKeyedRateLimiter(requestsPerMinute)}
}
