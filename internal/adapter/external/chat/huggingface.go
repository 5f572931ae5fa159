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

// HuggingFaceAdapter is the no-cost alternative chat backend, calling the
// Hugging Face inference API.
type HuggingFaceAdapter struct {
	apiKey  string
	baseURL string
	model   string
	client  *circuitbreaker.HTTPClient
	log     *zap.Logger
}

func NewHuggingFaceAdapter(apiKey, baseURL, model string, log *zap.Logger) *HuggingFaceAdapter {
	if baseURL == "" {
		baseURL = "https://api-inference.huggingface.co/models"
	}
	if model == "" {
		model = "mistralai/Mistral-7B-Instruct-v0.2"
	}
	return &HuggingFaceAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("huggingface"), log),
		log:     log,
	}
}

func (a *HuggingFaceAdapter) Ask(ctx context.Context, question string) (string, error) {
	if a.apiKey == "" {
		return "", fmt.Errorf("chat: %w: Hugging Face API key not configured", domain.ErrCollaboratorUnavailable)
	}

	payload, err := json.Marshal(map[string]interface{}{
		"inputs":     question,
		"parameters": map[string]interface{}{"max_new_tokens": 200, "return_full_text": false},
	})
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/%s", a.baseURL, a.model), bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("chat: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("huggingface", "error").Inc()
		return "", fmt.Errorf("chat: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		telemetry.CollaboratorRequests.WithLabelValues("huggingface", "error").Inc()
		return "", fmt.Errorf("chat: %w: status %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var body []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("chat: decode response: %w", err)
	}
	if len(body) == 0 || body[0].GeneratedText == "" {
		return "", fmt.Errorf("chat: empty response")
	}
	telemetry.CollaboratorRequests.WithLabelValues("huggingface", "ok").Inc()
	return body[0].GeneratedText, nil
}
