package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/infrastructure/circuitbreaker"
	"github.com/seu-repo/aria/internal/observability/telemetry"
	"github.com/seu-repo/aria/internal/ports"
)

const quoteCacheTTL = 5 * time.Minute

// Config carries the endpoints and keys for the three market data providers.
// Empty base URLs fall back to the public endpoints.
type Config struct {
	AlphaVantageKey     string
	AlphaVantageURL     string
	CryptoCompareKey    string
	CryptoCompareURL    string
	ExchangeRateBaseURL string
}

// Service answers stock, crypto and currency questions. Stocks come from
// Alpha Vantage, crypto from CryptoCompare and currency conversion from
// exchangerate-api. Quotes are cached briefly.
type Service struct {
	cfg    Config
	client *circuitbreaker.HTTPClient
	cache  ports.Cache
	log    *zap.Logger
}

func NewService(cfg Config, cache ports.Cache, log *zap.Logger) *Service {
	if cfg.AlphaVantageURL == "" {
		cfg.AlphaVantageURL = "https://www.alphavantage.co"
	}
	if cfg.CryptoCompareURL == "" {
		cfg.CryptoCompareURL = "https://min-api.cryptocompare.com"
	}
	if cfg.ExchangeRateBaseURL == "" {
		cfg.ExchangeRateBaseURL = "https://api.exchangerate-api.com/v4"
	}
	return &Service{
		cfg:    cfg,
		client: circuitbreaker.NewHTTPClientWithSettings(circuitbreaker.DefaultHTTPClientSettings("market"), log),
		cache:  cache,
		log:    log,
	}
}

func (s *Service) StockPrice(ctx context.Context, symbol string) (float64, error) {
	if s.cfg.AlphaVantageKey == "" {
		return 0, fmt.Errorf("market: %w: Alpha Vantage API key not configured", domain.ErrCollaboratorUnavailable)
	}

	cacheKey := "stock:" + symbol
	if price, ok := s.cachedPrice(ctx, cacheKey); ok {
		return price, nil
	}

	reqURL := fmt.Sprintf("%s/query?function=GLOBAL_QUOTE&symbol=%s&apikey=%s",
		s.cfg.AlphaVantageURL, url.QueryEscape(symbol), s.cfg.AlphaVantageKey)

	resp, err := s.client.Get(ctx, reqURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("stock", "error").Inc()
		return 0, fmt.Errorf("market: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	var body struct {
		GlobalQuote struct {
			Price string `json:"05. price"`
		} `json:"Global Quote"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("market: decode stock response: %w", err)
	}
	if body.GlobalQuote.Price == "" {
		telemetry.CollaboratorRequests.WithLabelValues("stock", "not_found").Inc()
		return 0, fmt.Errorf("market: no quote for %q", symbol)
	}

	price, err := strconv.ParseFloat(body.GlobalQuote.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("market: parse stock price %q: %w", body.GlobalQuote.Price, err)
	}
	telemetry.CollaboratorRequests.WithLabelValues("stock", "ok").Inc()
	s.storePrice(ctx, cacheKey, price)
	return price, nil
}

func (s *Service) CryptoPrice(ctx context.Context, symbol string) (float64, error) {
	if s.cfg.CryptoCompareKey == "" {
		return 0, fmt.Errorf("market: %w: CryptoCompare API key not configured", domain.ErrCollaboratorUnavailable)
	}

	cacheKey := "crypto:" + symbol
	if price, ok := s.cachedPrice(ctx, cacheKey); ok {
		return price, nil
	}

	reqURL := fmt.Sprintf("%s/data/price?fsym=%s&tsyms=USD&api_key=%s",
		s.cfg.CryptoCompareURL, url.QueryEscape(symbol), s.cfg.CryptoCompareKey)

	resp, err := s.client.Get(ctx, reqURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("crypto", "error").Inc()
		return 0, fmt.Errorf("market: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	var body map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("market: decode crypto response: %w", err)
	}
	price, ok := body["USD"]
	if !ok {
		telemetry.CollaboratorRequests.WithLabelValues("crypto", "not_found").Inc()
		return 0, fmt.Errorf("market: no price for %q", symbol)
	}
	telemetry.CollaboratorRequests.WithLabelValues("crypto", "ok").Inc()
	s.storePrice(ctx, cacheKey, price)
	return price, nil
}

func (s *Service) ExchangeRate(ctx context.Context, base, target string) (domain.ExchangeQuote, error) {
	if len(base) != 3 || len(target) != 3 {
		return domain.ExchangeQuote{}, fmt.Errorf("market: currency codes must be 3 letters (e.g., USD, EUR)")
	}

	cacheKey := "fx:" + base + ":" + target
	if rate, ok := s.cachedPrice(ctx, cacheKey); ok {
		return domain.ExchangeQuote{Rate: rate}, nil
	}

	reqURL := fmt.Sprintf("%s/latest/%s", s.cfg.ExchangeRateBaseURL, url.PathEscape(base))
	resp, err := s.client.Get(ctx, reqURL)
	if err != nil {
		telemetry.CollaboratorRequests.WithLabelValues("exchange", "error").Inc()
		return domain.ExchangeQuote{}, fmt.Errorf("market: %w: %v", domain.ErrCollaboratorUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == 404 {
		return domain.ExchangeQuote{}, fmt.Errorf("market: invalid currency code %q", base)
	}
	if resp.StatusCode != 200 {
		telemetry.CollaboratorRequests.WithLabelValues("exchange", "error").Inc()
		return domain.ExchangeQuote{}, fmt.Errorf("market: %w: status %d", domain.ErrCollaboratorUnavailable, resp.StatusCode)
	}

	var body struct {
		Rates       map[string]float64 `json:"rates"`
		LastUpdated int64              `json:"time_last_updated"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.ExchangeQuote{}, fmt.Errorf("market: decode exchange response: %w", err)
	}
	rate, ok := body.Rates[target]
	if !ok {
		return domain.ExchangeQuote{}, fmt.Errorf("market: invalid target currency %q", target)
	}
	telemetry.CollaboratorRequests.WithLabelValues("exchange", "ok").Inc()
	s.storePrice(ctx, cacheKey, rate)

	quote := domain.ExchangeQuote{Rate: rate}
	if body.LastUpdated > 0 {
		quote.LastUpdated = time.Unix(body.LastUpdated, 0)
	}
	return quote, nil
}

func (s *Service) cachedPrice(ctx context.Context, key string) (float64, bool) {
	if s.cache == nil {
		return 0, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return price, true
}

func (s *Service) storePrice(ctx context.Context, key string, price float64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, strconv.FormatFloat(price, 'f', -1, 64), quoteCacheTTL); err != nil {
		s.log.Warn("failed to cache quote", zap.String("key", key), zap.Error(err))
	}
}
