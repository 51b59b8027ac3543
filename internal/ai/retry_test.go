package ai

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/semaphore"
)

func TestIsRetriableError(t *testing.T) {
	retriable := []error{
		errors.New("429 Too Many Requests"),
		errors.New("rate limit exceeded"),
		errors.New("500 internal server error"),
		errors.New("503 service unavailable"),
		errors.New("overloaded_error: Overloaded"),
		errors.New("dial tcp: connection refused"),
		errors.New("read: connection reset by peer"),
		errors.New("request timeout"),
		fmt.Errorf("wrapped: %w", context.DeadlineExceeded),
	}
	for _, err := range retriable {
		assert.True(t, isRetriableError(err), "%v should be retriable", err)
	}

	permanent := []error{
		nil,
		errors.New("401 authentication_error: invalid x-api-key"),
		errors.New("400 invalid_request_error: max_tokens required"),
	}
	for _, err := range permanent {
		assert.False(t, isRetriableError(err), "%v should not be retriable", err)
	}
}

func newTestAdvisor(maxRetries int) *advisor {
	return &advisor{
		retry: retryConfig{
			MaxRetries:        maxRetries,
			InitialBackoff:    time.Millisecond,
			MaxBackoff:        5 * time.Millisecond,
			BackoffMultiplier: 2.0,
			Timeout:           time.Second,
		},
		sem: semaphore.NewWeighted(1),
	}
}

func TestRetryWithBackoffRetriesTransientErrors(t *testing.T) {
	a := newTestAdvisor(3)

	calls := 0
	err := a.retryWithBackoff(context.Background(), "test", func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("overloaded")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoffStopsOnPermanentError(t *testing.T) {
	a := newTestAdvisor(3)

	calls := 0
	err := a.retryWithBackoff(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return errors.New("401 invalid api key")
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls, "permanent errors do not retry")
}

func TestRetryWithBackoffExhaustsRetries(t *testing.T) {
	a := newTestAdvisor(2)

	calls := 0
	err := a.retryWithBackoff(context.Background(), "test", func(ctx context.Context) error {
		calls++
		return errors.New("503 service unavailable")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
	assert.Contains(t, err.Error(), "after 3 attempts")
}

func TestRetryWithBackoffHonorsContextCancel(t *testing.T) {
	a := newTestAdvisor(5)

	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := a.retryWithBackoff(ctx, "test", func(attemptCtx context.Context) error {
		calls++
		cancel()
		return errors.New("overloaded")
	})

	require.Error(t, err)
	assert.LessOrEqual(t, calls, 2)
}
