package resilience

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     2 * time.Millisecond,
		Multiplier:     2,
	}
}

func TestDo_RetriesTransientThenSucceeds(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastRetry(3), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return &StatusError{URL: "/x", StatusCode: http.StatusInternalServerError}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_PermanentErrorStopsImmediately(t *testing.T) {
	calls := 0
	permanent := &StatusError{URL: "/x", StatusCode: http.StatusNotFound}
	err := Do(context.Background(), fastRetry(5), func(ctx context.Context) error {
		calls++
		return permanent
	})
	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ExhaustsAttempts(t *testing.T) {
	calls := 0
	err := Do(context.Background(), fastRetry(3), func(ctx context.Context) error {
		calls++
		return &StatusError{URL: "/x", StatusCode: http.StatusTooManyRequests}
	})
	assert.Error(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ContextCancelStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Do(ctx, fastRetry(5), func(ctx context.Context) error {
		calls++
		cancel()
		return &StatusError{URL: "/x", StatusCode: http.StatusBadGateway}
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_OnRetryCallback(t *testing.T) {
	cfg := fastRetry(3)
	var notified []int
	cfg.OnRetry = func(attempt int, err error) {
		notified = append(notified, attempt)
	}
	Do(context.Background(), cfg, func(ctx context.Context) error {
		return &StatusError{URL: "/x", StatusCode: http.StatusServiceUnavailable}
	})
	assert.Equal(t, []int{1, 2}, notified)
}

func TestDo_ShouldRetryOverride(t *testing.T) {
	sentinel := errors.New("flaky")
	calls := 0
	cfg := fastRetry(3)
	cfg.ShouldRetry = func(err error) bool { return errors.Is(err, sentinel) }
	err := Do(context.Background(), cfg, func(ctx context.Context) error {
		calls++
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 3, calls)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&StatusError{StatusCode: http.StatusTooManyRequests}))
	assert.True(t, IsTransient(&StatusError{StatusCode: http.StatusBadGateway}))
	assert.False(t, IsTransient(&StatusError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsTransient(errors.New("parse failure")))
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{URL: "/bootstrap-static/", StatusCode: 503}
	assert.Contains(t, err.Error(), "/bootstrap-static/")
	assert.Contains(t, err.Error(), "503")
}
