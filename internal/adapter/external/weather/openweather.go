package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
	"github.com/seu-repo/aria/internal/ports"
)

const cacheTTL = 10 * time.Minute

// OpenWeatherAdapter fetches current conditions from the OpenWeatherMap API.
// Responses are cached per city so repeated questions don't burn quota.
type OpenWeatherAdapter struct {
	apiKey  string
	baseURL string
	client  *circuitbreaker.HTTPClient
	cache   ports.Cache
	log     *zap.Logger
}

func NewOpenWeatherAdapter(apiKey, baseURL string, cache ports.Cache, log *zap.Logger) *OpenWeatherAdapter {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org/data/2.5"
	}
	return &OpenWeatherAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("openweather"), log),
		cache:   cache,
		log:     log,
	}
}

type openWeatherResponse struct {
	Name    string `json:"name"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (a *OpenWeatherAdapter) CurrentWeather(ctx context.Context, city string) (*domain.WeatherReport, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("weather: %w: API key not configured", domain.ErrCollaboratorUnavailable)
	}

	cacheKey := "weather:" + city
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			var report domain.WeatherReport
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				return &report, nil
			}
		}
	}

	reqURL := fmt.Sprintf("%s/weather?q=%s&appid=%s&units=metric",
		a.baseURL, url.QueryEscape(city), a.apiKey)

	resp, err := a.client.Get(ctx, reqURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("weather: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		telemetry.CollaboratorRequests.WithLabelValues("weather", "not_found").Inc()
		return nil, fmt.Errorf("weather: city %q not found", city)
	}
	if resp.StatusCode != 200 {
		telemetry.CollaboratorRequests.WithLabelValues("weather", "error").Inc()
		return nil, fmt.Errorf("weather: %w: status %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var body openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("weather: decode response: %w", err)
	}
	if len(body.Weather) == 0 {
		return nil, fmt.Errorf("weather: empty response for %q", city)
	}
	telemetry.CollaboratorRequests.WithLabelValues("weather", "ok").Inc()

	report := &domain.WeatherReport{
		City:        body.Name,
		Description: body.Weather[0].Description,
		TempCelsius: body.Main.Temp,
		FeelsLike:   body.Main.FeelsLike,
		Humidity:    body.Main.Humidity,
		WindSpeed:   body.Wind.Speed,
	}

	if a.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			if err := a.cache.Set(ctx, cacheKey, string(data), cacheTTL); err != nil {
				a.log.Warn("failed to cache weather report", zap.String("city", city), zap.Error(err))
			}
		}
	}
	return report, nil
}
