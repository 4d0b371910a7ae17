package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/plantparty/outreach/internal/model"
	"github.com/plantparty/outreach/internal/service"
)

type EmailDrafter struct {
	gen    service.TextGeneratorInterface
	params service.SamplingParams
}

func NewEmailDrafter(gen service.TextGeneratorInterface, params service.SamplingParams) *EmailDrafter {
	return &EmailDrafter{gen: gen, params: params}
}

func (d *EmailDrafter) DraftEmail(ctx context.Context, c model.Candidate, description string) (string, error) {
	prompt := fmt.Sprintf(emailPromptTemplate, description, describeCandidate(c))
	out, err := d.gen.Complete(ctx, emailSystemPrompt, prompt, d.params)
	if err != nil {
		return "", &GenerationError{Task: "email", Err: err}
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", &GenerationError{Task: "email", Err: fmt.Errorf("empty response")}
	}
	return out, nil
}
