package pipeline

import (
	"context"
	"sync"

	"github.com/plantparty/outreach/internal/service"
)

// scriptedGenerator replays responses in order; the last one repeats.
type scriptedGenerator struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
	systems   []string
	prompts   []string
	params    []service.SamplingParams
}

func (g *scriptedGenerator) Complete(_ context.Context, system, prompt string, params service.SamplingParams) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	g.systems = append(g.systems, system)
	g.prompts = append(g.prompts, prompt)
	g.params = append(g.params, params)
	if g.err != nil {
		return "", g.err
	}
	if len(g.responses) == 0 {
		return "", nil
	}
	i := g.calls - 1
	if i >= len(g.responses) {
		i = len(g.responses) - 1
	}
	return g.responses[i], nil
}
