package dto

import (
	"strings"

	"github.com/plantparty/outreach/internal/model"
)

type ProposalRequest struct {
	ProjectOverview string         `json:"project_overview"`
	Location        model.Location `json:"location"`
}

// Validate returns field errors keyed by JSON path; nil when the request is usable.
func (r ProposalRequest) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(r.ProjectOverview) == "" {
		errs["project_overview"] = "project_overview is required"
	}
	if strings.TrimSpace(r.Location.City) == "" {
		errs["location.city"] = "city is required"
	}
	if strings.TrimSpace(r.Location.Country) == "" {
		errs["location.country"] = "country is required"
	}
	if c := r.Location.Coordinates; c != nil {
		if c.Latitude < -90 || c.Latitude > 90 {
			errs["location.coordinates.latitude"] = "latitude must be between -90 and 90"
		}
		if c.Longitude < -180 || c.Longitude > 180 {
			errs["location.coordinates.longitude"] = "longitude must be between -180 and 180"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (r ProposalRequest) ToModel() model.ProjectProposal {
	return model.ProjectProposal{
		Overview: strings.TrimSpace(r.ProjectOverview),
		Location: r.Location,
	}
}

type FeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type PersonInfo struct {
	Name        string   `json:"name"`
	Score       int      `json:"score"`
	EmailDraft  string   `json:"email_draft"`
	Bio         string   `json:"bio"`
	Location    string   `json:"location"`
	LinkedInURL string   `json:"linkedin_url"`
	Emails      []string `json:"emails"`
}

type PeopleListResponse struct {
	PeopleList []PersonInfo `json:"people_list"`
}

func NewPersonInfo(c model.Candidate) PersonInfo {
	emails := c.Emails
	if emails == nil {
		emails = []string{}
	}
	return PersonInfo{
		Name:        c.Name,
		Score:       c.ScoreValue(),
		EmailDraft:  c.EmailDraft,
		Bio:         c.Bio,
		Location:    c.Location,
		LinkedInURL: c.LinkedInURL,
		Emails:      emails,
	}
}

func NewPeopleListResponse(candidates []model.Candidate) PeopleListResponse {
	people := make([]PersonInfo, 0, len(candidates))
	for _, c := range candidates {
		people = append(people, NewPersonInfo(c))
	}
	return PeopleListResponse{PeopleList: people}
}
