package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for caller-correctable input such as an empty role list.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingName is returned when a provider record has no usable name.
	ErrMissingName = errors.New("record has no name")
)

// GenerationParseError means the model answered, but not in the expected shape.
type GenerationParseError struct {
	Task string
	Raw  string
}

func (e *GenerationParseError) Error() string {
	return fmt.Sprintf("%s: could not parse model output %q", e.Task, truncate(e.Raw, 200))
}

// GenerationError wraps a failed text-generation call.
type GenerationError struct {
	Task string
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: generation failed: %v", e.Task, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// truncate keeps at most n runes of s.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
