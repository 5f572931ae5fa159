package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/mocks"
)

func newStockServer(t *testing.T, price string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "function=GLOBAL_QUOTE") {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"Global Quote": {"05. price": "` + price + `"}}`))
	}))
}

func TestStockPrice(t *testing.T) {
	server := newStockServer(t, "187.5000")
	defer server.Close()

	svc := NewService(Config{AlphaVantageKey: "k", AlphaVantageURL: server.URL}, nil, zap.NewNop())

	price, err := svc.StockPrice(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("StockPrice: %v", err)
	}
	if price != 187.5 {
		t.Errorf("price = %v", price)
	}
}

func TestStockPrice_UnknownSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Global Quote": {}}`))
	}))
	defer server.Close()

	svc := NewService(Config{AlphaVantageKey: "k", AlphaVantageURL: server.URL}, nil, zap.NewNop())

	if _, err := svc.StockPrice(context.Background(), "NOPE"); err == nil {
		t.Error("expected an error for an unknown symbol")
	}
}

func TestStockPrice_NoAPIKey(t *testing.T) {
	svc := NewService(Config{}, nil, zap.NewNop())

	if _, err := svc.StockPrice(context.Background(), "AAPL"); err == nil {
		t.Error("expected an error without an API key")
	}
}

func TestCryptoPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.RawQuery, "fsym=BTC") {
			t.Errorf("unexpected query %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"USD": 64250.12}`))
	}))
	defer server.Close()

	svc := NewService(Config{CryptoCompareKey: "k", CryptoCompareURL: server.URL}, nil, zap.NewNop())

	price, err := svc.CryptoPrice(context.Background(), "BTC")
	if err != nil {
		t.Fatalf("CryptoPrice: %v", err)
	}
	if price != 64250.12 {
		t.Errorf("price = %v", price)
	}
}

func TestExchangeRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest/USD" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"rates": {"EUR": 0.9273, "GBP": 0.7854}, "time_last_updated": 1710489600}`))
	}))
	defer server.Close()

	svc := NewService(Config{ExchangeRateBaseURL: server.URL}, nil, zap.NewNop())

	quote, err := svc.ExchangeRate(context.Background(), "USD", "EUR")
	if err != nil {
		t.Fatalf("ExchangeRate: %v", err)
	}
	if quote.Rate != 0.9273 {
		t.Errorf("rate = %v", quote.Rate)
	}
	if quote.LastUpdated.Unix() != 1710489600 {
		t.Errorf("last updated = %v", quote.LastUpdated)
	}
}

func TestExchangeRate_InvalidCodes(t *testing.T) {
	svc := NewService(Config{}, nil, zap.NewNop())

	if _, err := svc.ExchangeRate(context.Background(), "US", "EUR"); err == nil {
		t.Error("expected an error for a 2-letter code")
	}
	if _, err := svc.ExchangeRate(context.Background(), "USD", "EURO"); err == nil {
		t.Error("expected an error for a 4-letter code")
	}
}

func TestExchangeRate_UnknownTarget(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates": {"EUR": 0.9273}}`))
	}))
	defer server.Close()

	svc := NewService(Config{ExchangeRateBaseURL: server.URL}, nil, zap.NewNop())

	if _, err := svc.ExchangeRate(context.Background(), "USD", "XYZ"); err == nil {
		t.Error("expected an error for an unknown target currency")
	}
}

func TestStockPrice_UsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"Global Quote": {"05. price": "187.5000"}}`))
	}))
	defer server.Close()

	cache := mocks.NewMockCache()
	svc := NewService(Config{AlphaVantageKey: "k", AlphaVantageURL: server.URL}, cache, zap.NewNop())

	for i := 0; i < 3; i++ {
		if _, err := svc.StockPrice(context.Background(), "AAPL"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}

	if calls != 1 {
		t.Errorf("upstream hit %d times, want 1", calls)
	}
}
