package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/plantparty/outreach/internal/model"
	"github.com/tidwall/gjson"
)

const (
	// RecencyWindowDays bounds how far back past jobs are kept.
	RecencyWindowDays = 3650

	endDateLayout = "2006-01-02"
	linkedInBase  = "https://linkedin.com/in/"
)

// Enricher normalizes provider records into candidates. Now is the clock
// used for elapsed-day figures; nil means time.Now.
type Enricher struct {
	Now func() time.Time
}

func (e Enricher) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Enrich builds a Candidate from one raw record. Missing fields become empty
// values; only a record without a name is rejected.
func (e Enricher) Enrich(raw model.RawCandidate) (model.Candidate, error) {
	if !gjson.ValidBytes(raw) {
		return model.Candidate{}, fmt.Errorf("%w: record is not valid JSON", ErrMissingName)
	}
	rec := gjson.ParseBytes(raw)

	name := strings.TrimSpace(stringField(rec, "full_name"))
	if name == "" {
		return model.Candidate{}, ErrMissingName
	}

	c := model.Candidate{
		Name:         name,
		Location:     stringField(rec, "location_name"),
		LinkedInURL:  linkedInURL(rec),
		Skills:       stringList(rec.Get("skills")),
		Interests:    stringList(rec.Get("interests")),
		Summary:      stringField(rec, "summary"),
		Emails:       emails(rec),
		PhoneNumbers: stringList(rec.Get("phone_numbers")),
		PastJobs:     []model.PastJob{},
	}

	today := e.now()
	for _, job := range rec.Get("experience").Array() {
		if job.Get("is_primary").Bool() {
			if c.CurrentJobTitle == "" && c.CompanyName == "" {
				c.CurrentJobTitle = stringField(job, "title.name")
				c.CompanyName = stringField(job, "company.name")
				c.Industry = stringField(job, "company.industry")
			}
			continue
		}
		days, ok := daysSince(stringField(job, "end_date"), today)
		if !ok || days > RecencyWindowDays {
			continue
		}
		c.PastJobs = append(c.PastJobs, model.PastJob{
			Title:        stringField(job, "title.name"),
			DaysSinceEnd: days,
		})
	}

	return c, nil
}

// daysSince counts calendar days from a YYYY-MM-DD date to now's date, taken
// in now's own time zone. End dates in the future count as 0.
func daysSince(date string, now time.Time) (int, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return 0, false
	}
	end, err := time.Parse(endDateLayout, date)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(end).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days, true
}

// stringField returns the value at path only when it is a JSON string. The
// provider masks some fields with booleans on restricted plans.
func stringField(r gjson.Result, path string) string {
	v := r.Get(path)
	if v.Type != gjson.String {
		return ""
	}
	return v.String()
}

func stringList(r gjson.Result) []string {
	out := make([]string, 0)
	if !r.IsArray() {
		return out
	}
	r.ForEach(func(_, v gjson.Result) bool {
		if v.Type == gjson.String {
			if s := strings.TrimSpace(v.String()); s != "" {
				out = append(out, s)
			}
		}
		return true
	})
	return out
}

func linkedInURL(rec gjson.Result) string {
	if user := strings.TrimSpace(stringField(rec, "linkedin_username")); user != "" {
		return linkedInBase + user
	}
	if u := strings.TrimSpace(stringField(rec, "linkedin_url")); u != "" {
		if !strings.HasPrefix(u, "http") {
			u = "https://" + u
		}
		return u
	}
	return ""
}

func emails(rec gjson.Result) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	add := func(addr string) {
		addr = strings.TrimSpace(addr)
		key := strings.ToLower(addr)
		if addr == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, addr)
	}
	for _, e := range stringList(rec.Get("personal_emails")) {
		add(e)
	}
	for _, e := range stringList(rec.Get("emails.#.address")) {
		add(e)
	}
	return out
}
