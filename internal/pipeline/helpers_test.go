package pipeline

import "github.com/plantparty/outreach/internal/service"

func rolesParams() service.SamplingParams {
	return service.SamplingParams{Temperature: 0.3, MaxTokens: 600}
}
