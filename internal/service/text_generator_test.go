package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type countingGenerator struct {
	calls atomic.Int32
}

func (g *countingGenerator) Complete(ctx context.Context, _, _ string, _ SamplingParams) (string, error) {
	g.calls.Add(1)
	return "ok", nil
}

func TestRateLimitedGenerator_PassesThrough(t *testing.T) {
	inner := &countingGenerator{}
	gen := NewRateLimitedGenerator(inner, 0, 0)

	for i := 0; i < 5; i++ {
		out, err := gen.Complete(context.Background(), "", "p", SamplingParams{})
		require.NoError(t, err)
		assert.Equal(t, "ok", out)
	}
	assert.Equal(t, int32(5), inner.calls.Load())
}

func TestRateLimitedGenerator_CancelledWhileWaiting(t *testing.T) {
	inner := &countingGenerator{}
	gen := NewRateLimitedGenerator(inner, 0.001, 1)

	_, err := gen.Complete(context.Background(), "", "p", SamplingParams{})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err = gen.Complete(ctx, "", "p", SamplingParams{})
	assert.Error(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
}

func TestGeminiService_Backoff(t *testing.T) {
	s := &GeminiService{BaseDelay: time.Second, MaxDelay: 3 * time.Second}

	within := func(t *testing.T, base time.Duration, got time.Duration) {
		t.Helper()
		assert.GreaterOrEqual(t, got, base-base/8)
		assert.Less(t, got, base+base/8)
	}

	within(t, time.Second, s.calculateBackoff(1))
	within(t, 2*time.Second, s.calculateBackoff(2))
	within(t, 3*time.Second, s.calculateBackoff(5))
}

func TestGeminiService_BackoffIsJittered(t *testing.T) {
	s := &GeminiService{BaseDelay: time.Second, MaxDelay: time.Minute}

	seen := make(map[time.Duration]struct{})
	for i := 0; i < 20; i++ {
		seen[s.calculateBackoff(3)] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestGeminiService_IsRetryableError(t *testing.T) {
	s := &GeminiService{}
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "rate limit", err: &genai.APIError{Code: 429}, want: true},
		{name: "server error", err: &genai.APIError{Code: 503}, want: true},
		{name: "bad request", err: &genai.APIError{Code: 400}, want: false},
		{name: "connection reset", err: errors.New("read: connection reset by peer"), want: true},
		{name: "deadline", err: context.DeadlineExceeded, want: false},
		{name: "other", err: errors.New("boom"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.isRetryableError(tt.err))
		})
	}
}

func TestGeminiService_CircuitBreaker(t *testing.T) {
	s := &GeminiService{Model: "m", circuitBreakerMax: 2}
	s.recordFailure()
	s.recordFailure()

	n, open := s.GetCircuitBreakerStatus()
	assert.Equal(t, 2, n)
	assert.True(t, open)

	_, err := s.Complete(context.Background(), "", "hi", SamplingParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "circuit breaker open")

	s.ResetCircuitBreaker()
	_, open = s.GetCircuitBreakerStatus()
	assert.False(t, open)
}

func TestGeminiService_CircuitBreakerCooldown(t *testing.T) {
	s := &GeminiService{Model: "m", circuitBreakerMax: 1, CircuitCooldown: time.Minute}
	s.recordFailure()
	assert.Error(t, s.allowRequest(), "open within the cooldown")

	s.mu.Lock()
	s.lastFailure = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	require.NoError(t, s.allowRequest())
	n, open := s.GetCircuitBreakerStatus()
	assert.Zero(t, n)
	assert.False(t, open)
}
