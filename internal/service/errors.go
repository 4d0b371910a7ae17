package service

import (
	"errors"
	"fmt"
)

// CapabilityUnavailableError means an external client could not be built,
// usually because a credential is missing.
type CapabilityUnavailableError struct {
	Capability string
	Reason     string
	Err        error
}

func (e *CapabilityUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s unavailable: %s: %v", e.Capability, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s unavailable: %s", e.Capability, e.Reason)
}

func (e *CapabilityUnavailableError) Unwrap() error { return e.Err }

// SearchProviderError reports a failed or non-success people search.
type SearchProviderError struct {
	Status  int
	Message string
	Err     error
}

func (e *SearchProviderError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("people search: %v", e.Err)
	case e.Status != 0:
		return fmt.Sprintf("people search: status %d: %s", e.Status, e.Message)
	default:
		return fmt.Sprintf("people search: %s", e.Message)
	}
}

func (e *SearchProviderError) Unwrap() error { return e.Err }

func IsSearchProviderError(err error) bool {
	var target *SearchProviderError
	return errors.As(err, &target)
}
