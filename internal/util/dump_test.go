package util

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/plantparty/outreach/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCandidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs", "raw_filtered.json")
	score := 77
	candidates := []model.Candidate{{
		Name:     "Jane Doe",
		Score:    &score,
		PastJobs: []model.PastJob{{Title: "Intern", DaysSinceEnd: 12}},
	}}

	require.NoError(t, DumpCandidates(context.Background(), path, candidates))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back []model.Candidate
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "Jane Doe", back[0].Name)
	assert.Equal(t, 77, back[0].ScoreValue())
	assert.Equal(t, 12, back[0].PastJobs[0].DaysSinceEnd)
}

func TestDumpCandidates_NilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")
	require.NoError(t, DumpCandidates(context.Background(), path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestDumpCandidates_Concurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.json")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, DumpCandidates(context.Background(), path, []model.Candidate{{Name: "x"}}))
		}()
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, json.Valid(data))
}
