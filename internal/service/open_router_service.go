package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

// OpenRouterService talks to an OpenAI-compatible chat completions API.
type OpenRouterService struct {
	client *resty.Client
	Model  string
}

func NewOpenRouterService(apiKey, baseURL, model string) (*OpenRouterService, error) {
	if apiKey == "" {
		return nil, &CapabilityUnavailableError{Capability: "text generation", Reason: "OPENROUTER_API_KEY not set"}
	}
	if model == "" {
		return nil, &CapabilityUnavailableError{Capability: "text generation", Reason: "OPENROUTER_MODEL is empty"}
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(90*time.Second).
		SetHeader("Authorization", "Bearer "+apiKey).
		SetHeader("Content-Type", "application/json")

	return &OpenRouterService{client: client, Model: model}, nil
}

func (s *OpenRouterService) Complete(ctx context.Context, systemInstruction, userPrompt string, params SamplingParams) (string, error) {
	if strings.TrimSpace(userPrompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	messages := make([]map[string]string, 0, 2)
	if systemInstruction != "" {
		messages = append(messages, map[string]string{"role": "system", "content": systemInstruction})
	}
	messages = append(messages, map[string]string{"role": "user", "content": userPrompt})

	payload := map[string]any{
		"model":       s.Model,
		"messages":    messages,
		"temperature": params.Temperature,
	}
	if params.TopP > 0 {
		payload["top_p"] = params.TopP
	}
	if params.MaxTokens > 0 {
		payload["max_tokens"] = params.MaxTokens
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	body := resp.String()
	if resp.IsError() {
		msg := gjson.Get(body, "error.message").String()
		if msg == "" {
			msg = body
		}
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode(), msg)
	}

	content := gjson.Get(body, "choices.0.message.content")
	if !content.Exists() {
		return "", fmt.Errorf("no response from LLM")
	}
	return content.String(), nil
}
