package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"
	"github.com/plantparty/outreach/internal/config"
	"github.com/plantparty/outreach/internal/model"
	"github.com/plantparty/outreach/internal/pipeline"
	"github.com/plantparty/outreach/internal/service"
	"github.com/plantparty/outreach/internal/util"
	"golang.org/x/sync/errgroup"
)

type DescriptionValidatorInterface interface {
	Validate(ctx context.Context, description string) (pipeline.ValidationResult, error)
}

type RoleDeriverInterface interface {
	DeriveRoles(ctx context.Context, description string) []string
}

type CandidateFinderInterface interface {
	FindByFilter(ctx context.Context, filter string) ([]model.RawCandidate, error)
}

type EnricherInterface interface {
	Enrich(raw model.RawCandidate) (model.Candidate, error)
}

type ScorerInterface interface {
	Score(ctx context.Context, c model.Candidate, description string) int
}

type BioGeneratorInterface interface {
	GenerateBio(ctx context.Context, c model.Candidate, description string) (string, error)
}

type EmailDrafterInterface interface {
	DraftEmail(ctx context.Context, c model.Candidate, description string) (string, error)
}

// Dependencies are the pipeline stages; all must be safe for concurrent use.
type Dependencies struct {
	Validator DescriptionValidatorInterface
	Roles     RoleDeriverInterface
	Finder    CandidateFinderInterface
	Enricher  EnricherInterface
	Scorer    ScorerInterface
	Bios      BioGeneratorInterface
	Emails    EmailDrafterInterface
}

// NewDependencies wires the standard pipeline stages around one text generator.
func NewDependencies(gen service.TextGeneratorInterface, finder CandidateFinderInterface, cfg config.PipelineConfig) Dependencies {
	return Dependencies{
		Validator: pipeline.NewDescriptionValidator(gen, sampling(cfg.Validate)),
		Roles:     pipeline.NewRoleDeriver(gen, sampling(cfg.Roles)),
		Finder:    finder,
		Enricher:  pipeline.Enricher{},
		Scorer:    pipeline.NewRelevanceScorer(gen, sampling(cfg.Score)),
		Bios:      pipeline.NewBioGenerator(gen, sampling(cfg.Bio)),
		Emails:    pipeline.NewEmailDrafter(gen, sampling(cfg.Email)),
	}
}

func sampling(s config.Sampling) service.SamplingParams {
	return service.SamplingParams{Temperature: s.Temperature, TopP: s.TopP, MaxTokens: s.MaxTokens}
}

type Options struct {
	// Workers bounds how many candidates are scored and drafted at once.
	Workers  int
	DumpPath string
}

// CandidateFailure records a stage that failed for one candidate; the
// candidate is still returned without that field.
type CandidateFailure struct {
	Candidate string
	Task      string
	Err       error
}

type PipelineResult struct {
	RunID      string
	Accepted   bool
	Feedback   string
	Roles      []string
	Candidates []model.Candidate
	Failures   []CandidateFailure
}

type ProposalUsecase struct {
	deps Dependencies
	opts Options
}

func NewProposalUsecase(deps Dependencies, opts Options) *ProposalUsecase {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &ProposalUsecase{deps: deps, opts: opts}
}

// Run takes one proposal through validation, role derivation, search,
// enrichment, and per-candidate scoring and drafting. A rejected description
// returns a result with Accepted false and the feedback. Errors are returned
// only when the description could not be validated or the input is invalid.
func (uc *ProposalUsecase) Run(ctx context.Context, proposal model.ProjectProposal) (*PipelineResult, error) {
	runID := uuid.NewString()
	logf := func(format string, args ...any) {
		log.Printf("[run %s] "+format, append([]any{runID}, args...)...)
	}

	verdict, err := uc.deps.Validator.Validate(ctx, proposal.Overview)
	if err != nil {
		return nil, fmt.Errorf("validate description: %w", err)
	}
	if !verdict.Accepted {
		logf("description rejected")
		return &PipelineResult{RunID: runID, Feedback: verdict.Feedback}, nil
	}

	result := &PipelineResult{
		RunID:      runID,
		Accepted:   true,
		Candidates: []model.Candidate{},
		Failures:   []CandidateFailure{},
	}

	result.Roles = uc.deps.Roles.DeriveRoles(ctx, proposal.Overview)
	logf("derived %d roles: %v", len(result.Roles), result.Roles)
	if len(result.Roles) == 0 {
		logf("no roles derived, skipping search")
		return result, nil
	}

	filter, err := pipeline.BuildFilter(result.Roles, proposal.Location)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("build filter: %w", err)
	}
	logf("search filter: %s", filter)

	records, err := uc.deps.Finder.FindByFilter(ctx, filter)
	if err != nil {
		if service.IsSearchProviderError(err) {
			logf("search provider error, returning no candidates: %v", err)
		} else {
			logf("search failed, returning no candidates: %v", err)
		}
		return result, nil
	}

	candidates := make([]model.Candidate, 0, len(records))
	for i, raw := range records {
		c, err := uc.deps.Enricher.Enrich(raw)
		if err != nil {
			logf("skipping record %d: %v", i, err)
			continue
		}
		candidates = append(candidates, c)
	}
	logf("enriched %d of %d records", len(candidates), len(records))

	result.Candidates, result.Failures = uc.scoreAndDraft(ctx, candidates, proposal.Overview)

	sort.SliceStable(result.Candidates, func(i, j int) bool {
		return result.Candidates[i].ScoreValue() > result.Candidates[j].ScoreValue()
	})

	if uc.opts.DumpPath != "" {
		if err := util.DumpCandidates(ctx, uc.opts.DumpPath, result.Candidates); err != nil {
			logf("%v", err)
		}
	}

	logf("done: %d candidates, %d stage failures", len(result.Candidates), len(result.Failures))
	return result, nil
}

func (uc *ProposalUsecase) scoreAndDraft(ctx context.Context, candidates []model.Candidate, description string) ([]model.Candidate, []CandidateFailure) {
	out := make([]model.Candidate, len(candidates))
	failures := make([][]CandidateFailure, len(candidates))

	var g errgroup.Group
	g.SetLimit(uc.opts.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			out[i], failures[i] = uc.processCandidate(ctx, c, description)
			return nil
		})
	}
	_ = g.Wait()

	all := make([]CandidateFailure, 0)
	for _, f := range failures {
		all = append(all, f...)
	}
	return out, all
}

// processCandidate runs each generator exactly once for c and merges the
// results. A failed stage leaves its field empty.
func (uc *ProposalUsecase) processCandidate(ctx context.Context, c model.Candidate, description string) (model.Candidate, []CandidateFailure) {
	var failures []CandidateFailure
	fail := func(task string, err error) {
		log.Printf("[candidate %s] %s: %v", c.Name, task, err)
		failures = append(failures, CandidateFailure{Candidate: c.Name, Task: task, Err: err})
	}

	merged, err := c.WithScore(uc.deps.Scorer.Score(ctx, c, description))
	if err != nil {
		fail("score", err)
	} else {
		c = merged
	}

	if bio, err := uc.deps.Bios.GenerateBio(ctx, c, description); err != nil {
		fail("bio", err)
	} else if merged, err := c.WithBio(bio); err != nil {
		fail("bio", err)
	} else {
		c = merged
	}

	if draft, err := uc.deps.Emails.DraftEmail(ctx, c, description); err != nil {
		fail("email", err)
	} else if merged, err := c.WithEmailDraft(draft); err != nil {
		fail("email", err)
	} else {
		c = merged
	}

	return c, failures
}
