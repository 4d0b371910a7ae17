package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/plantparty/outreach/internal/model"
	"github.com/plantparty/outreach/internal/service"
)

type BioGenerator struct {
	gen    service.TextGeneratorInterface
	params service.SamplingParams
}

func NewBioGenerator(gen service.TextGeneratorInterface, params service.SamplingParams) *BioGenerator {
	return &BioGenerator{gen: gen, params: params}
}

// GenerateBio writes up to three bullets on why the candidate matters to the project.
func (g *BioGenerator) GenerateBio(ctx context.Context, c model.Candidate, description string) (string, error) {
	prompt := fmt.Sprintf(bioPromptTemplate, description, describeCandidate(c))
	out, err := g.gen.Complete(ctx, bioSystemPrompt, prompt, g.params)
	if err != nil {
		return "", &GenerationError{Task: "bio", Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &GenerationError{Task: "bio", Err: fmt.Errorf("empty response")}
	}
	return out, nil
}
