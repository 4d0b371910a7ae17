package service

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// SamplingParams are passed through to the provider; zero values mean
// "provider default" except Temperature, which is always sent.
type SamplingParams struct {
	Temperature float32
	TopP        float32
	MaxTokens   int32
}

// TextGeneratorInterface is the text-generation capability the pipeline
// depends on. Implementations must be safe for concurrent use.
type TextGeneratorInterface interface {
	Complete(ctx context.Context, systemInstruction, userPrompt string, params SamplingParams) (string, error)
}

// RateLimitedGenerator throttles calls to the wrapped generator.
type RateLimitedGenerator struct {
	next    TextGeneratorInterface
	limiter *rate.Limiter
}

func NewRateLimitedGenerator(next TextGeneratorInterface, perSecond float64, burst int) *RateLimitedGenerator {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimitedGenerator{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
	}
}

func (g *RateLimitedGenerator) Complete(ctx context.Context, systemInstruction, userPrompt string, params SamplingParams) (string, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter wait: %w", err)
	}
	return g.next.Complete(ctx, systemInstruction, userPrompt, params)
}
