package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
)

// Transcriber sends recorded audio to an external speech-to-text endpoint
// (OpenAI-compatible transcription API) and returns the recognized text.
type Transcriber struct {
	apiKey  string
	baseURL string
	model   string
	client  *circuitbreaker.HTTPClient
	log     *zap.Logger
}

func transcriberSettings() circuitbreaker.HTTPClientSettings {
	s := circuitbreaker.DefaultHTTPClientSettings("stt")
	s.Timeout = 60 * time.Second
	return s
}

func NewTranscriber(apiKey, baseURL, model string, log *zap.Logger) *Transcriber {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "whisper-1"
	}
	return &Transcriber{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client:  circuitbreaker.NewHTTPClientWithSettings(transcriberSettings(), log),
		log:     log,
	}
}

func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if t.apiKey == "" {
		return "", fmt.Errorf("voice: %w: transcription API key not configured", domain.ErrCollaboratorUnavailable)
	}
	if len(audio) == 0 {
		return "", fmt.Errorf("voice: empty audio payload")
	}

	body, contentType, err := multipartAudio(audio, mimeType, t.model)
	if err != nil {
		return "", fmt.Errorf("voice: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/audio/transcriptions", body)
	if err != nil {
		return "", fmt.Errorf("voice: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+t.apiKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := t.client.Do(req)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("stt", "error").Inc()
		return "", fmt.Errorf("voice: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		telemetry.CollaboratorRequests.WithLabelValues("stt", "error").Inc()
		return "", fmt.Errorf("voice: %w: status %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("voice: decode response: %w", err)
	}
	if out.Text == "" {
		telemetry.CollaboratorRequests.WithLabelValues("stt", "error").Inc()
		return "", fmt.Errorf("voice: %w", domain.ErrRecognitionFailure)
	}
	telemetry.CollaboratorRequests.WithLabelValues("stt", "ok").Inc()
	return out.Text, nil
}

func multipartAudio(audio []byte, mimeType, model string) (*bytes.Buffer, string, error) {
	ext := "wav"
	switch mimeType {
	case "audio/webm":
		ext = "webm"
	case "audio/mpeg":
		ext = "mp3"
	}

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	part, err := w.CreateFormFile("file", "audio."+ext)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", err
	}
	if err := w.WriteField("model", model); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
