package ipinfo

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
)

// Adapter resolves the machine's public IP. It tries ipapi.co first and
// falls back to ipify when that fails.
type Adapter struct {
	primaryURL  string
	fallbackURL string
	client      *circuitbreaker.HTTPClient
	log         *zap.Logger
}

func NewAdapter(primaryURL, fallbackURL string, log *zap.Logger) *Adapter {
	if primaryURL == "" {
		primaryURL = "https://ipapi.co/json/"
	}
	if fallbackURL == "" {
		fallbackURL = "https://api64.ipify.org?format=json"
	}
	return &Adapter{
		primaryURL:  primaryURL,
		fallbackURL: fallbackURL,
		client:      circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("ipinfo"), log),
		log:         log,
	}
}

func (a *Adapter) PublicIP(ctx context.Context) (string, error) {
	if ip, err := a.lookup(ctx, a.primaryURL); err == nil {
		telemetry.CollaboratorRequests.WithLabelValues("ipinfo", "ok").Inc()
		return ip, nil
	} else {
		a.log.Warn("primary IP service failed", zap.Error(err))
	}

	ip, err := a.lookup(ctx, a.fallbackURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("ipinfo", "error").Inc()
		return "", fmt.Errorf("ipinfo: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	telemetry.CollaboratorRequests.WithLabelValues("ipinfo", "ok").Inc()
	return ip, nil
}

func (a *Adapter) lookup(ctx context.Context, url string) (string, error) {
	resp, err := a.client.Get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("status %d", resp.StatusCode)
	}

	var body struct {
		IP string `json:"ip"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	if body.IP == "" {
		return "", fmt.Errorf("empty IP in response")
	}
	return body.IP, nil
}
