package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/plantparty/outreach/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearch struct {
	records []model.RawCandidate
	err     error
	calls   int
	size    int
}

func (f *fakeSearch) Search(_ context.Context, _ string, size int) ([]model.RawCandidate, error) {
	f.calls++
	f.size = size
	return f.records, f.err
}

type memoryCache struct {
	entries map[string][]model.RawCandidate
	getErr  error
}

func (m *memoryCache) key(filter string, size int) string {
	return fmt.Sprintf("%s#%d", filter, size)
}

func (m *memoryCache) Get(_ context.Context, filter string, size int) ([]model.RawCandidate, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	r, ok := m.entries[m.key(filter, size)]
	return r, ok, nil
}

func (m *memoryCache) Set(_ context.Context, filter string, size int, records []model.RawCandidate) error {
	m.entries[m.key(filter, size)] = records
	return nil
}

func TestCandidateRepository_CachesResults(t *testing.T) {
	search := &fakeSearch{records: []model.RawCandidate{model.RawCandidate(`{"full_name":"Jane"}`)}}
	c := &memoryCache{entries: map[string][]model.RawCandidate{}}
	repo := NewCandidateRepository(search, c, 2)

	first, err := repo.FindByFilter(context.Background(), "q")
	require.NoError(t, err)
	second, err := repo.FindByFilter(context.Background(), "q")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, search.calls)
	assert.Equal(t, 2, search.size)
}

func TestCandidateRepository_CacheErrorFallsThrough(t *testing.T) {
	search := &fakeSearch{records: []model.RawCandidate{}}
	repo := NewCandidateRepository(search, &memoryCache{entries: map[string][]model.RawCandidate{}, getErr: errors.New("down")}, 0)

	_, err := repo.FindByFilter(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 1, search.calls)
	assert.Equal(t, 10, search.size, "default size")
}

func TestCandidateRepository_SearchErrorNotCached(t *testing.T) {
	search := &fakeSearch{err: errors.New("provider down")}
	c := &memoryCache{entries: map[string][]model.RawCandidate{}}
	repo := NewCandidateRepository(search, c, 1)

	_, err := repo.FindByFilter(context.Background(), "q")
	assert.Error(t, err)
	assert.Empty(t, c.entries)
}

func TestCandidateRepository_NoCache(t *testing.T) {
	search := &fakeSearch{records: []model.RawCandidate{}}
	repo := NewCandidateRepository(search, nil, 1)

	_, err := repo.FindByFilter(context.Background(), "q")
	require.NoError(t, err)
	_, err = repo.FindByFilter(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, 2, search.calls)
}
