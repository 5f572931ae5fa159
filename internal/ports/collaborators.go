package ports

import (
	"context"

	"github.com/seu-repo/aria/internal/domain"
)

// WeatherService looks up current conditions for a city.
type WeatherService interface {
	CurrentWeather(ctx context.Context, city string) (*domain.WeatherReport, error)
}

// NewsService fetches top headlines.
type NewsService interface {
	TopHeadlines(ctx context.Context, limit int) ([]domain.NewsArticle, error)
}

// MarketService answers stock, crypto and currency questions.
type MarketService interface {
	StockPrice(ctx context.Context, symbol string) (float64, error)
	CryptoPrice(ctx context.Context, symbol string) (float64, error)
	ExchangeRate(ctx context.Context, base, target string) (domain.ExchangeQuote, error)
}

// IPService reports the machine's public IP address.
type IPService interface {
	PublicIP(ctx context.Context) (string, error)
}

// ChatService forwards free-form questions to a language model.
type ChatService interface {
	Ask(ctx context.Context, question string) (string, error)
}

// SearchService resolves search queries into openable URLs and short
// summaries.
type SearchService interface {
	YouTubeURL(query string) string
	GoogleURL(query string) string
	WikipediaSummary(ctx context.Context, topic string) (string, error)
}

// EmailService sends plain messages on behalf of the user.
type EmailService interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ReminderService stores reminders and reads them back.
type ReminderService interface {
	Add(ctx context.Context, task, timeSpec string) (*domain.Reminder, error)
	List(ctx context.Context) ([]domain.Reminder, error)
}

// SystemService reads local machine state.
type SystemService interface {
	Battery(ctx context.Context) (*domain.BatteryStatus, error)
	Now() (timeStr, dateStr string)
}

// AppLauncher opens local applications and URLs.
type AppLauncher interface {
	OpenApp(ctx context.Context, name string) error
	OpenURL(ctx context.Context, url string) error
}

// Transcriber converts recorded audio into text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// PasswordGenerator produces random passwords of a requested length.
type PasswordGenerator interface {
	Generate(length int) (string, error)
}
