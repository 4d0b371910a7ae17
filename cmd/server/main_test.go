package main

import (
	"context"
	"testing"

	"github.com/plantparty/outreach/internal/service"
	"github.com/stretchr/testify/assert"
)

func TestNewTextGenerator_UnknownProvider(t *testing.T) {
	for _, provider := range []string{"gemni", "", "openai"} {
		t.Run(provider, func(t *testing.T) {
			gen, err := newTextGenerator(context.Background(), provider)
			assert.Nil(t, gen)

			var unavailable *service.CapabilityUnavailableError
			if assert.ErrorAs(t, err, &unavailable) {
				assert.Contains(t, unavailable.Reason, "unknown LLM_PROVIDER")
			}
		})
	}
}
