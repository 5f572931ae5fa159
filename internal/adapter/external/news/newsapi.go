package news

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
)

// NewsAPIAdapter fetches top headlines from newsapi.org.
type NewsAPIAdapter struct {
	apiKey  string
	baseURL string
	country string
	client  *circuitbreaker.HTTPClient
	log     *zap.Logger
}

func NewNewsAPIAdapter(apiKey, baseURL, country string, log *zap.Logger) *NewsAPIAdapter {
	if baseURL == "" {
		baseURL = "https://newsapi.org/v2"
	}
	if country == "" {
		country = "us"
	}
	return &NewsAPIAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		country: country,
		client:  circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("newsapi"), log),
		log:     log,
	}
}

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title  string `json:"title"`
		URL    string `json:"url"`
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

func (a *NewsAPIAdapter) TopHeadlines(ctx context.Context, limit int) ([]domain.NewsArticle, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("news: %w: API key not configured", domain.ErrCollaboratorUnavailable)
	}
	if limit <= 0 {
		limit = 5
	}

	reqURL := fmt.Sprintf("%s/top-headlines?country=%s&apiKey=%s", a.baseURL, a.country, a.apiKey)
	resp, err := a.client.Get(ctx, reqURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("news", "error").Inc()
		return nil, fmt.Errorf("news: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 401 {
		return nil, fmt.Errorf("news: invalid API key")
	}
	if resp.StatusCode != 200 {
		telemetry.CollaboratorRequests.WithLabelValues("news", "error").Inc()
		return nil, fmt.Errorf("news: %w: status %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var body newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("news: decode response: %w", err)
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("news: API error: %s", body.Message)
	}
	telemetry.CollaboratorRequests.WithLabelValues("news", "ok").Inc()

	articles := make([]domain.NewsArticle, 0, limit)
	for _, item := range body.Articles {
		if len(articles) == limit {
			break
		}
		articles = append(articles, domain.NewsArticle{
			Title:  item.Title,
			Source: item.Source.Name,
			URL:    item.URL,
		})
	}
	return articles, nil
}
