package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/plantparty/outreach/internal/model"
	"github.com/tidwall/gjson"
)

type PeopleSearchInterface interface {
	Search(ctx context.Context, filter string, size int) ([]model.RawCandidate, error)
}

// PeopleDataLabsService queries the People Data Labs person search API with
// an SQL filter.
type PeopleDataLabsService struct {
	client *resty.Client
}

func NewPeopleDataLabsService(apiKey, baseURL string) (*PeopleDataLabsService, error) {
	if apiKey == "" {
		return nil, &CapabilityUnavailableError{Capability: "people search", Reason: "PDL_API_KEY not set"}
	}
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(60*time.Second).
		SetHeader("X-Api-Key", apiKey).
		SetHeader("Content-Type", "application/json")
	return &PeopleDataLabsService{client: client}, nil
}

func (s *PeopleDataLabsService) Search(ctx context.Context, filter string, size int) ([]model.RawCandidate, error) {
	if size <= 0 {
		size = 1
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"sql":    filter,
			"size":   size,
			"pretty": false,
		}).
		Post("/person/search")
	if err != nil {
		return nil, &SearchProviderError{Err: err}
	}

	body := resp.Body()
	status := int(gjson.GetBytes(body, "status").Int())
	if status == 0 {
		status = resp.StatusCode()
	}
	if resp.IsError() || status != 200 {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = strings.TrimSpace(string(body))
		}
		if strings.Contains(strings.ToLower(msg), "sql") {
			log.Printf("[pdl] provider rejected the SQL filter: %s", filter)
		}
		return nil, &SearchProviderError{Status: status, Message: msg}
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		log.Println("[pdl] no data field in response")
		return []model.RawCandidate{}, nil
	}

	records := make([]model.RawCandidate, 0, len(data.Array()))
	data.ForEach(func(_, value gjson.Result) bool {
		if value.IsObject() {
			records = append(records, model.RawCandidate(value.Raw))
		}
		return true
	})

	log.Printf("[pdl] fetched %d records, %d total matching", len(records), gjson.GetBytes(body, "total").Int())
	return records, nil
}
