package model

import (
	"encoding/json"
	"errors"
)

// ErrFieldAlreadySet is returned when a derived candidate field is written twice in one run.
var ErrFieldAlreadySet = errors.New("candidate field already set")

// RawCandidate is a person record exactly as the people-search provider returned it.
type RawCandidate json.RawMessage

func (r RawCandidate) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r, nil
}

func (r *RawCandidate) UnmarshalJSON(data []byte) error {
	if r == nil {
		return errors.New("model.RawCandidate: UnmarshalJSON on nil pointer")
	}
	*r = append((*r)[0:0], data...)
	return nil
}

type PastJob struct {
	Title        string `json:"title"`
	DaysSinceEnd int    `json:"days_since_end"`
}

// Candidate is the normalized person threaded through one pipeline run.
// Derived fields (score, bio, email draft) are set through the With* methods,
// each of which returns a copy and refuses to overwrite an existing value.
type Candidate struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	LinkedInURL string `json:"linkedin_url"`

	CurrentJobTitle string    `json:"current_job_title"`
	CompanyName     string    `json:"company_name"`
	Industry        string    `json:"industry"`
	PastJobs        []PastJob `json:"past_job_title"`

	Skills    []string `json:"skills"`
	Interests []string `json:"interests"`
	Summary   string   `json:"summary"`

	Emails       []string `json:"emails"`
	PhoneNumbers []string `json:"phone_numbers"`

	Score      *int   `json:"score,omitempty"`
	Bio        string `json:"bio,omitempty"`
	EmailDraft string `json:"email_draft,omitempty"`
}

func (c Candidate) WithScore(score int) (Candidate, error) {
	if c.Score != nil {
		return c, ErrFieldAlreadySet
	}
	c.Score = &score
	return c, nil
}

func (c Candidate) WithBio(bio string) (Candidate, error) {
	if c.Bio != "" {
		return c, ErrFieldAlreadySet
	}
	c.Bio = bio
	return c, nil
}

func (c Candidate) WithEmailDraft(draft string) (Candidate, error) {
	if c.EmailDraft != "" {
		return c, ErrFieldAlreadySet
	}
	c.EmailDraft = draft
	return c, nil
}

// ScoreValue returns the score, or 0 when the candidate was never scored.
func (c Candidate) ScoreValue() int {
	if c.Score == nil {
		return 0
	}
	return *c.Score
}
