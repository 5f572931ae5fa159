package mocks

import (
	"context"

	"github.com/seu-repo/aria/internal/domain"
)

// MockWeatherService is a mock implementation of WeatherService interface
type MockWeatherService struct {
	CurrentWeatherFunc func(ctx context.Context, city string) (*domain.WeatherReport, error)
}

func (m *MockWeatherService) CurrentWeather(ctx context.Context, city string) (*domain.WeatherReport, error) {
	if m.CurrentWeatherFunc != nil {
		return m.CurrentWeatherFunc(ctx, city)
	}
	return &domain.WeatherReport{City: city, Description: "clear sky"}, nil
}

// MockNewsService is a mock implementation of NewsService interface
type MockNewsService struct {
	TopHeadlinesFunc func(ctx context.Context, limit int) ([]domain.NewsArticle, error)
}

func (m *MockNewsService) TopHeadlines(ctx context.Context, limit int) ([]domain.NewsArticle, error) {
	if m.TopHeadlinesFunc != nil {
		return m.TopHeadlinesFunc(ctx, limit)
	}
	return []domain.NewsArticle{}, nil
}

// MockMarketService is a mock implementation of MarketService interface
type MockMarketService struct {
	StockPriceFunc   func(ctx context.Context, symbol string) (float64, error)
	CryptoPriceFunc  func(ctx context.Context, symbol string) (float64, error)
	ExchangeRateFunc func(ctx context.Context, base, target string) (domain.ExchangeQuote, error)
}

func (m *MockMarketService) StockPrice(ctx context.Context, symbol string) (float64, error) {
	if m.StockPriceFunc != nil {
		return m.StockPriceFunc(ctx, symbol)
	}
	return 0, nil
}

func (m *MockMarketService) CryptoPrice(ctx context.Context, symbol string) (float64, error) {
	if m.CryptoPriceFunc != nil {
		return m.CryptoPriceFunc(ctx, symbol)
	}
	return 0, nil
}

func (m *MockMarketService) ExchangeRate(ctx context.Context, base, target string) (domain.ExchangeQuote, error) {
	if m.ExchangeRateFunc != nil {
		return m.ExchangeRateFunc(ctx, base, target)
	}
	return domain.ExchangeQuote{}, nil
}

// MockIPService is a mock implementation of IPService interface
type MockIPService struct {
	PublicIPFunc func(ctx context.Context) (string, error)
}

func (m *MockIPService) PublicIP(ctx context.Context) (string, error) {
	if m.PublicIPFunc != nil {
		return m.PublicIPFunc(ctx)
	}
	return "127.0.0.1", nil
}

// MockChatService is a mock implementation of ChatService interface
type MockChatService struct {
	AskFunc func(ctx context.Context, question string) (string, error)
}

func (m *MockChatService) Ask(ctx context.Context, question string) (string, error) {
	if m.AskFunc != nil {
		return m.AskFunc(ctx, question)
	}
	return "mock answer", nil
}

// MockSearchService is a mock implementation of SearchService interface
type MockSearchService struct {
	YouTubeURLFunc       func(query string) string
	GoogleURLFunc        func(query string) string
	WikipediaSummaryFunc func(ctx context.Context, topic string) (string, error)
}

func (m *MockSearchService) YouTubeURL(query string) string {
	if m.YouTubeURLFunc != nil {
		return m.YouTubeURLFunc(query)
	}
	return "https://www.youtube.com/results?search_query=" + query
}

func (m *MockSearchService) GoogleURL(query string) string {
	if m.GoogleURLFunc != nil {
		return m.GoogleURLFunc(query)
	}
	return "https://www.google.com/search?q=" + query
}

func (m *MockSearchService) WikipediaSummary(ctx context.Context, topic string) (string, error) {
	if m.WikipediaSummaryFunc != nil {
		return m.WikipediaSummaryFunc(ctx, topic)
	}
	return "mock summary", nil
}

// MockEmailService is a mock implementation of EmailService interface
type MockEmailService struct {
	SendFunc  func(ctx context.Context, to, subject, body string) error
	SentCount int
}

func (m *MockEmailService) Send(ctx context.Context, to, subject, body string) error {
	m.SentCount++
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}
	return nil
}

// MockReminderService is a mock implementation of ReminderService interface
type MockReminderService struct {
	AddFunc  func(ctx context.Context, task, timeSpec string) (*domain.Reminder, error)
	ListFunc func(ctx context.Context) ([]domain.Reminder, error)
}

func (m *MockReminderService) Add(ctx context.Context, task, timeSpec string) (*domain.Reminder, error) {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, task, timeSpec)
	}
	return &domain.Reminder{Task: task, Time: timeSpec}, nil
}

func (m *MockReminderService) List(ctx context.Context) ([]domain.Reminder, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Reminder{}, nil
}

// MockSystemService is a mock implementation of SystemService interface
type MockSystemService struct {
	BatteryFunc func(ctx context.Context) (*domain.BatteryStatus, error)
	NowFunc     func() (string, string)
}

func (m *MockSystemService) Battery(ctx context.Context) (*domain.BatteryStatus, error) {
	if m.BatteryFunc != nil {
		return m.BatteryFunc(ctx)
	}
	return &domain.BatteryStatus{Percent: 100, Charging: true, Present: true}, nil
}

func (m *MockSystemService) Now() (string, string) {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return "10:00 AM", "Monday, January 01, 2024"
}

// MockAppLauncher is a mock implementation of AppLauncher interface
type MockAppLauncher struct {
	OpenAppFunc func(ctx context.Context, name string) error
	OpenURLFunc func(ctx context.Context, url string) error
	OpenedApps  []string
	OpenedURLs  []string
}

func (m *MockAppLauncher) OpenApp(ctx context.Context, name string) error {
	m.OpenedApps = append(m.OpenedApps, name)
	if m.OpenAppFunc != nil {
		return m.OpenAppFunc(ctx, name)
	}
	return nil
}

func (m *MockAppLauncher) OpenURL(ctx context.Context, url string) error {
	m.OpenedURLs = append(m.OpenedURLs, url)
	if m.OpenURLFunc != nil {
		return m.OpenURLFunc(ctx, url)
	}
	return nil
}

// MockTranscriber is a mock implementation of Transcriber interface
type MockTranscriber struct {
	TranscribeFunc func(ctx context.Context, audio []byte, mimeType string) (string, error)
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, mimeType)
	}
	return "", nil
}

// MockPasswordGenerator is a mock implementation of PasswordGenerator interface
type MockPasswordGenerator struct {
	GenerateFunc func(length int) (string, error)
}

func (m *MockPasswordGenerator) Generate(length int) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(length)
	}
	return "Aa1!Aa1!Aa1!", nil
}

// MockReminderRepository is a mock implementation of ReminderRepository interface
type MockReminderRepository struct {
	SaveFunc     func(ctx context.Context, reminder *domain.Reminder) error
	FindByIDFunc func(ctx context.Context, id string) (*domain.Reminder, error)
	FindAllFunc  func(ctx context.Context) ([]domain.Reminder, error)
	DeleteFunc   func(ctx context.Context, id string) error
	Saved        []domain.Reminder
}

func (m *MockReminderRepository) Save(ctx context.Context, reminder *domain.Reminder) error {
	m.Saved = append(m.Saved, *reminder)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, reminder)
	}
	return nil
}

func (m *MockReminderRepository) FindByID(ctx context.Context, id string) (*domain.Reminder, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *MockReminderRepository) FindAll(ctx context.Context) ([]domain.Reminder, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return m.Saved, nil
}

func (m *MockReminderRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
