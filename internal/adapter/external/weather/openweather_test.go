package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/mocks"
)

const sampleResponse = `{
	"name": "London",
	"weather": [{"description": "light rain"}],
	"main": {"temp": 14.5, "feels_like": 13.2, "humidity": 87},
	"wind": {"speed": 4.1}
}`

func TestCurrentWeather(t *testing.T) {
	// Arrange
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	adapter := NewOpenWeatherAdapter("test-key", server.URL, nil, zap.NewNop())

	// Act
	report, err := adapter.CurrentWeather(context.Background(), "London")

	// Assert
	if err != nil {
		t.Fatalf("CurrentWeather: %v", err)
	}
	if report.City != "London" || report.Description != "light rain" {
		t.Errorf("report = %+v", report)
	}
	if report.TempCelsius != 14.5 || report.FeelsLike != 13.2 || report.Humidity != 87 || report.WindSpeed != 4.1 {
		t.Errorf("report = %+v", report)
	}
	if !strings.Contains(gotQuery, "q=London") || !strings.Contains(gotQuery, "units=metric") {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestCurrentWeather_CityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	adapter := NewOpenWeatherAdapter("test-key", server.URL, nil, zap.NewNop())

	_, err := adapter.CurrentWeather(context.Background(), "Nowhereville")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("got err %v, want not found", err)
	}
}

func TestCurrentWeather_NoAPIKey(t *testing.T) {
	adapter := NewOpenWeatherAdapter("", "", nil, zap.NewNop())

	if _, err := adapter.CurrentWeather(context.Background(), "London"); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestCurrentWeather_CachesReports(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(sampleResponse))
	}))
	defer server.Close()

	cache := mocks.NewMockCache()
	adapter := NewOpenWeatherAdapter("test-key", server.URL, cache, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := adapter.CurrentWeather(context.Background(), "London"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	if calls != 1 {
		t.Errorf("upstream hit %d times, want 1", calls)
	}
}
