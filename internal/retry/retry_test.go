package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(maxRetries int) Config {
	return Config{
		MaxRetries: maxRetries,
		BaseDelay:  10 * time.Millisecond,
		MaxDelay:   100 * time.Millisecond,
		Timeout:    1 * time.Second,
	}
}

func TestWithRetrySuccess(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		calls++
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, calls)
}

func TestWithRetrySuccessAfterRetries(t *testing.T) {
	calls := 0
	result, err := WithRetry(context.Background(), fastConfig(3), func(ctx context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("temporary failure")
		}
		return "success", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, calls)
}

func TestWithRetryFailureAfterMaxRetries(t *testing.T) {
	persistent := errors.New("persistent failure")
	calls := 0
	result, err := WithRetry(context.Background(), fastConfig(2), func(ctx context.Context) (string, error) {
		calls++
		return "", persistent
	})

	require.ErrorIs(t, err, persistent)
	assert.Empty(t, result)
	assert.Equal(t, 3, calls) // MaxRetries + 1
}

func TestWithRetryStopsOnNonRetryableError(t *testing.T) {
	rejected := errors.New("permission denied")
	cfg := fastConfig(5)
	cfg.Retryable = func(err error) bool { return !errors.Is(err, rejected) }

	calls := 0
	_, err := WithRetry(context.Background(), cfg, func(ctx context.Context) (struct{}, error) {
		calls++
		return struct{}{}, rejected
	})

	require.ErrorIs(t, err, rejected)
	assert.Equal(t, 1, calls)
}

func TestWithRetryContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(5)
	cfg.BaseDelay = 50 * time.Millisecond

	calls := 0
	result, err := WithRetry(ctx, cfg, func(ctx context.Context) (string, error) {
		calls++
		if calls == 2 {
			cancel()
		}
		return "", errors.New("failure")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, result)
	assert.LessOrEqual(t, calls, 3)
}

func TestWithRetryContextTimeout(t *testing.T) {
	cfg := fastConfig(10)
	cfg.BaseDelay = 50 * time.Millisecond
	cfg.MaxDelay = 200 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := WithRetry(ctx, cfg, func(ctx context.Context) (string, error) {
		return "", errors.New("failure")
	})

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}

func TestCalculateBackoffDelay(t *testing.T) {
	baseDelay := 10 * time.Millisecond
	maxDelay := 100 * time.Millisecond

	tests := []struct {
		attempt     int
		minDelay    time.Duration
		maxExpected time.Duration
	}{
		{0, 5 * time.Millisecond, 15 * time.Millisecond},
		{1, 10 * time.Millisecond, 30 * time.Millisecond},
		{2, 20 * time.Millisecond, 60 * time.Millisecond},
		{3, 40 * time.Millisecond, 100 * time.Millisecond},
		{4, 50 * time.Millisecond, 100 * time.Millisecond},
		{35, 50 * time.Millisecond, 100 * time.Millisecond}, // must not overflow
		{100, 50 * time.Millisecond, 100 * time.Millisecond},
	}

	for _, tt := range tests {
		for i := 0; i < 10; i++ {
			got := calculateBackoffDelay(tt.attempt, baseDelay, maxDelay)
			assert.GreaterOrEqual(t, got, tt.minDelay, "attempt %d", tt.attempt)
			assert.LessOrEqual(t, got, tt.maxExpected, "attempt %d", tt.attempt)
		}
	}
}
