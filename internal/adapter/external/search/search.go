package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
)

// Adapter builds search URLs and answers Wikipedia lookups through the
// REST summary endpoint.
type Adapter struct {
	wikiBaseURL string
	client      *circuitbreaker.HTTPClient
	log         *zap.Logger
}

func NewAdapter(wikiBaseURL string, log *zap.Logger) *Adapter {
	if wikiBaseURL == "" {
		wikiBaseURL = "https://en.wikipedia.org/api/rest_v1"
	}
	return &Adapter{
		wikiBaseURL: wikiBaseURL,
		client:      circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("wikipedia"), log),
		log:         log,
	}
}

func (a *Adapter) YouTubeURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
}

func (a *Adapter) GoogleURL(query string) string {
	return "https://www.google.com/search?q=" + url.QueryEscape(query)
}

func (a *Adapter) WikipediaSummary(ctx context.Context, topic string) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	reqURL := fmt.Sprintf("%s/page/summary/%s", a.wikiBaseURL, url.PathEscape(title))

	resp, err := a.client.Get(ctx, reqURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("wikipedia", "error").Inc()
		return "", fmt.Errorf("search: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		telemetry.CollaboratorRequests.WithLabelValues("wikipedia", "not_found").Inc()
		return "", fmt.Errorf("search: no Wikipedia article about %q", topic)
	}
	if resp.StatusCode != 200 {
		telemetry.CollaboratorRequests.WithLabelValues("wikipedia", "error").Inc()
		return "", fmt.Errorf("search: %w: status %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var body struct {
		Extract string `json:"extract"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("search: decode response: %w", err)
	}
	if body.Extract == "" {
		return "", fmt.Errorf("search: empty summary for %q", topic)
	}
	telemetry.CollaboratorRequests.WithLabelValues("wikipedia", "ok").Inc()
	return body.Extract, nil
}
