package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/plantparty/outreach/internal/service"
)

// ValidationResult is either accepted or rejected with feedback for the caller.
type ValidationResult struct {
	Accepted bool
	Feedback string
}

type DescriptionValidator struct {
	gen    service.TextGeneratorInterface
	params service.SamplingParams
}

func NewDescriptionValidator(gen service.TextGeneratorInterface, params service.SamplingParams) *DescriptionValidator {
	return &DescriptionValidator{gen: gen, params: params}
}

// Validate judges whether the description carries enough detail to target outreach.
// A capability failure or an empty answer is returned as an error; the
// validator does not accept descriptions it could not check.
func (v *DescriptionValidator) Validate(ctx context.Context, description string) (ValidationResult, error) {
	raw, err := v.gen.Complete(ctx, validateSystemPrompt, fmt.Sprintf(validatePromptTemplate, description), v.params)
	if err != nil {
		return ValidationResult{}, &GenerationError{Task: "validate", Err: err}
	}

	feedback := strings.TrimSpace(raw)
	if feedback == "" {
		return ValidationResult{}, &GenerationParseError{Task: "validate", Raw: raw}
	}
	if isAcceptance(feedback) {
		return ValidationResult{Accepted: true}, nil
	}
	return ValidationResult{Feedback: feedback}, nil
}

// isAcceptance tolerates the marker wrapped in quotes, bold or a trailing period.
func isAcceptance(s string) bool {
	return strings.Trim(s, " \t\r\n\"'*`.") == AcceptanceMarker
}
