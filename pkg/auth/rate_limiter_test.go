package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyedRateLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewKeyedRateLimiter(3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := limiter.Allow(ctx, "client-a")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d should be within burst", i)
	}

	allowed, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, allowed, "burst exhausted")
}

func TestKeyedRateLimiter_KeysIndependent(t *testing.T) {
	limiter := NewKeyedRateLimiter(1)
	ctx := context.Background()

	allowed, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = limiter.Allow(ctx, "client-b")
	require.NoError(t, err)
	assert.True(t, allowed, "other keys keep their own bucket")
}

func TestKeyedRateLimiter_Reset(t *testing.T) {
	limiter := NewKeyedRateLimiter(1)
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)

	allowed, err := limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	require.False(t, allowed)

	require.NoError(t, limiter.Reset(ctx, "client-a"))

	allowed, err = limiter.Allow(ctx, "client-a")
	require.NoError(t, err)
	assert.True(t, allowed, "reset restores the full burst")
}

func TestKeyedRateLimiter_ConcurrentAccess(t *testing.T) {
	limiter := NewKeyedRateLimiter(100)
	ctx := context.Background()

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func(n int) {
			defer func() { done <- struct{}{} }()
			key := fmt.Sprintf("client-%d", n%2)
			for j := 0; j < 20; j++ {
				_, err := limiter.Allow(ctx, key)
				assert.NoError(t, err)
			}
		}(i)
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}

func TestRateLimiterInterface(t *testing.T) {
	var _ RateLimiter = NewIPRateLimiter(10)
	var _ RateLimiter = NewUserRateLimiter(10)
}
