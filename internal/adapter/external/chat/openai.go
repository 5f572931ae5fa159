package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
)

// OpenAIAdapter answers free-form questions through the OpenAI chat
// completions API.
type OpenAIAdapter struct {
	apiKey  string
	baseURL string
	model   string
	client  *circuitbreaker.HTTPClient
	log     *zap.Logger
}

func NewOpenAIAdapter(apiKey, baseURL, model string, log *zap.Logger) *OpenAIAdapter {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("openai"), log),
		log:     log,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (a *OpenAIAdapter) Ask(ctx context.Context, question string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("chat: %w: OpenAI API key not configured", domain.ErrCollaboratorUnavailable)
	}

	payload, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a helpful voice assistant. Keep answers short and speakable."},
			{Role: "user", Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("chat: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("openai", "error").Inc()
		return "", fmt.Errorf("chat: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	var body chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}
	if body.Error != nil {
		telemetry.CollaboratorRequests.WithLabelValues("openai", "error").Inc()
		return "", fmt.Errorf("chat: API error: %s", body.Error.Message)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("chat: empty response")
	}
	telemetry.CollaboratorRequests.WithLabelValues("openai", "ok").Inc()
	return body.Choices[0].Message.Content, nil
}
