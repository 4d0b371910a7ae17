package pipeline

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/plantparty/outreach/internal/model"
	"github.com/plantparty/outreach/internal/service"
)

const (
	MinScore = 1
	MaxScore = 100

	// FallbackScore is used when no attempt produced a usable score.
	FallbackScore = 0

	defaultScoreAttempts = 3
)

type RelevanceScorer struct {
	gen    service.TextGeneratorInterface
	params service.SamplingParams

	MaxAttempts int
	// Backoff is the wait before the second attempt; it doubles after that.
	Backoff time.Duration
}

func NewRelevanceScorer(gen service.TextGeneratorInterface, params service.SamplingParams) *RelevanceScorer {
	return &RelevanceScorer{
		gen:         gen,
		params:      params,
		MaxAttempts: defaultScoreAttempts,
		Backoff:     500 * time.Millisecond,
	}
}

// Score rates the candidate's relevance to the project in [1,100]. When every
// attempt fails it returns FallbackScore; scoring never fails the run.
func (s *RelevanceScorer) Score(ctx context.Context, c model.Candidate, description string) int {
	prompt := fmt.Sprintf(scorePromptTemplate, description, personSummary(c))

	attempts := s.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := s.Backoff

	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 && delay > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				log.Printf("[score] %s: cancelled after %d attempts: %v", c.Name, attempt-1, ctx.Err())
				return FallbackScore
			}
			delay *= 2
		}

		raw, err := s.gen.Complete(ctx, scoreSystemPrompt, prompt, s.params)
		if err != nil {
			log.Printf("[score] %s: attempt %d/%d: %v", c.Name, attempt, attempts, &GenerationError{Task: "score", Err: err})
			continue
		}
		score, err := ParseScore(raw)
		if err != nil {
			log.Printf("[score] %s: attempt %d/%d: %v", c.Name, attempt, attempts, err)
			continue
		}
		return score
	}
	return FallbackScore
}

// ParseScore reads an integer in [MinScore, MaxScore] from model output.
func ParseScore(raw string) (int, error) {
	s := strings.Trim(raw, " \t\r\n\"'*`.")
	n, err := strconv.Atoi(s)
	if err != nil || n < MinScore || n > MaxScore {
		return 0, &GenerationParseError{Task: "score", Raw: raw}
	}
	return n, nil
}
