package repository

import (
	"context"
	"log"

	"github.com/plantparty/outreach/internal/cache"
	"github.com/plantparty/outreach/internal/model"
	"github.com/plantparty/outreach/internal/service"
)

// CandidateRepository fetches raw candidate records for a filter, going
// through the search cache when one is configured.
type CandidateRepository struct {
	search service.PeopleSearchInterface
	cache  cache.SearchCache
	size   int
}

// NewCandidateRepository builds a repository; searchCache may be nil.
func NewCandidateRepository(search service.PeopleSearchInterface, searchCache cache.SearchCache, size int) *CandidateRepository {
	if size <= 0 {
		size = 10
	}
	return &CandidateRepository{search: search, cache: searchCache, size: size}
}

func (r *CandidateRepository) FindByFilter(ctx context.Context, filter string) ([]model.RawCandidate, error) {
	if r.cache != nil {
		records, hit, err := r.cache.Get(ctx, filter, r.size)
		if err != nil {
			log.Printf("[search-cache] %v", err)
		} else if hit {
			log.Printf("[search-cache] hit, %d records", len(records))
			return records, nil
		}
	}

	records, err := r.search.Search(ctx, filter, r.size)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, filter, r.size, records); err != nil {
			log.Printf("[search-cache] %v", err)
		}
	}
	return records, nil
}
