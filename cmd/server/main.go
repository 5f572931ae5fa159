package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	// Internal packages
	"github.com/seu-repo/aria/internal/adapter/cache"
	"github.com/seu-repo/aria/internal/adapter/external/chat"
	"github.com/seu-repo/aria/internal/adapter/external/ipinfo"
	"github.com/seu-repo/aria/internal/adapter/external/market"
	"github.com/seu-repo/aria/internal/adapter/external/news"
	"github.com/seu-repo/aria/internal/adapter/external/search"
	"github.com/seu-repo/aria/internal/adapter/external/weather"
	"github.com/seu-repo/aria/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/aria/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/aria/internal/adapter/storage/file"
	"github.com/seu-repo/aria/internal/adapter/storage/postgres"
	"github.com/seu-repo/aria/internal/adapter/system"
	"github.com/seu-repo/aria/internal/adapter/vault"
	"github.com/seu-repo/aria/internal/adapter/voice"
	wsAdapter "github.com/seu-repo/aria/internal/adapter/websocket"
	"github.com/seu-repo/aria/internal/assistant"
	"github.com/seu-repo/aria/internal/domain"
	"github.com/seu-repo/aria/internal/observability/telemetry"
	"github.com/seu-repo/aria/internal/pipeline"
	"github.com/seu-repo/aria/internal/ports"
	"github.com/seu-repo/aria/internal/service/email"
	"github.com/seu-repo/aria/internal/service/health"
	"github.com/seu-repo/aria/internal/service/password"
	"github.com/seu-repo/aria/internal/service/reminder"
	"github.com/seu-repo/aria/pkg/config"

	"github.com/seu-repo/aria/internal/adapter/queue"
)

const (
	serviceName    = "aria-assistant"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Aria Assistant",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	tracerProvider, err := telemetry.InitTracer(serviceName)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		if err := tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// 4. Resolve Secrets from Vault (optional)
	if cfg.Vault.Enabled {
		sm, err := vault.NewSecretManager(cfg.Vault.Address, cfg.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to connect to Vault", zap.Error(err))
		}
		if dsn, err := sm.GetDatabaseCredentials(); err == nil && dsn != "" {
			cfg.Database.URL = dsn
		}
		fillFromVault(sm, logger, map[string]*string{
			"openweather":   &cfg.Collaborators.OpenWeather.APIKey,
			"newsapi":       &cfg.Collaborators.NewsAPI.APIKey,
			"alpha_vantage": &cfg.Collaborators.AlphaVantage.APIKey,
			"cryptocompare": &cfg.Collaborators.CryptoCompare.APIKey,
			"openai":        &cfg.Collaborators.OpenAI.APIKey,
			"huggingface":   &cfg.Collaborators.HuggingFace.APIKey,
			"transcription": &cfg.Collaborators.Transcription.APIKey,
			"sendgrid":      &cfg.Email.SendGridAPIKey,
		})
	}

	// 5. Initialize Reminder Storage (PostgreSQL, or a local file when no
	// database is configured)
	var reminderRepo ports.ReminderRepository
	var sqlDB *sql.DB
	if cfg.Database.URL != "" {
		db, err := postgres.NewConnection(cfg.Database.URL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		sqlDB, err = db.DB()
		if err != nil {
			logger.Fatal("Failed to get underlying SQL DB", zap.Error(err))
		}
		defer sqlDB.Close()

		if err := postgres.RunMigrations(db); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		reminderRepo = postgres.NewReminderRepository(db, logger)
	} else {
		logger.Info("No database configured, storing reminders in a file",
			zap.String("path", cfg.Assistant.ReminderFile))
		reminderRepo = file.NewReminderStore(cfg.Assistant.ReminderFile, logger)
	}

	// 6. Initialize Cache (Redis, falling back to in-process cache)
	appCache, err := cache.NewRedisCache(cfg.Redis.URL, logger)
	if err != nil {
		logger.Warn("Redis unavailable, using local cache", zap.Error(err))
		appCache = cache.NewLocalCache(5*time.Minute, logger)
	}
	defer appCache.Close()

	// 7. Initialize Message Queue (optional)
	var messageQueue queue.MessageQueue
	if cfg.Queue.Provider != "" {
		var qerr error
		switch cfg.Queue.Provider {
		case "nats":
			messageQueue, qerr = queue.NewNATSQueue(cfg.Queue.URL, logger)
		case "rabbitmq":
			messageQueue, qerr = queue.NewRabbitMQQueue(cfg.Queue.URL, logger)
		default:
			logger.Fatal("Unknown queue provider", zap.String("provider", cfg.Queue.Provider))
		}
		if qerr != nil {
			logger.Fatal("Failed to connect to message queue", zap.Error(qerr))
		}
		defer messageQueue.Close()
	} else {
		logger.Info("Message queue disabled")
	}

	// 8. Initialize Email Service
	emailService, err := email.NewService(&email.Config{
		Provider:       cfg.Email.Provider,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		SMTPHost:       cfg.Email.SMTPHost,
		SMTPPort:       cfg.Email.SMTPPort,
		SMTPUsername:   cfg.Email.SMTPUsername,
		SMTPPassword:   cfg.Email.SMTPPassword,
		SMTPUseTLS:     cfg.Email.SMTPUseTLS,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service", zap.Error(err))
	}

	// 9. Initialize Collaborator Adapters
	co := assistant.Collaborators{
		Weather: weather.NewOpenWeatherAdapter(
			cfg.Collaborators.OpenWeather.APIKey,
			cfg.Collaborators.OpenWeather.BaseURL,
			appCache, logger),
		News: news.NewNewsAPIAdapter(
			cfg.Collaborators.NewsAPI.APIKey,
			cfg.Collaborators.NewsAPI.BaseURL,
			cfg.Collaborators.NewsAPI.Country,
			logger),
		Market: market.NewService(market.Config{
			AlphaVantageKey:     cfg.Collaborators.AlphaVantage.APIKey,
			AlphaVantageURL:     cfg.Collaborators.AlphaVantage.BaseURL,
			CryptoCompareKey:    cfg.Collaborators.CryptoCompare.APIKey,
			CryptoCompareURL:    cfg.Collaborators.CryptoCompare.BaseURL,
			ExchangeRateBaseURL: cfg.Collaborators.ExchangeRate.BaseURL,
		}, appCache, logger),
		IP: ipinfo.NewAdapter(
			cfg.Collaborators.IPInfo.PrimaryURL,
			cfg.Collaborators.IPInfo.FallbackURL,
			logger),
		Chat: chat.NewOpenAIAdapter(
			cfg.Collaborators.OpenAI.APIKey,
			cfg.Collaborators.OpenAI.BaseURL,
			cfg.Collaborators.OpenAI.Model,
			logger),
		FreeChat: chat.NewHuggingFaceAdapter(
			cfg.Collaborators.HuggingFace.APIKey,
			cfg.Collaborators.HuggingFace.BaseURL,
			cfg.Collaborators.HuggingFace.Model,
			logger),
		Search:    search.NewAdapter(cfg.Collaborators.Wikipedia.BaseURL, logger),
		Email:     emailService,
		Reminders: reminder.NewService(reminderRepo, messageQueue, logger),
		System:    system.NewAdapter(logger),
		Launcher:  system.NewLauncher(logger),
		Passwords: password.NewGenerator(),
	}

	// 10. Initialize Assistant Engine
	engine := assistant.NewEngine(co, cfg.Assistant.BotName, cfg.Assistant.UserName, logger)

	// 11. Initialize WebSocket Hub (real-time utterance feed)
	wsHub := wsAdapter.NewHub()
	go wsHub.Run()

	// 12. Initialize Command Pipeline
	pipe := pipeline.New(engine, logger)
	pipe.OnResult(func(res domain.Result) {
		wsHub.BroadcastResult(res, logger)
		if messageQueue != nil {
			publishResult(messageQueue, res, logger)
		}
	})
	pipe.Start()

	// 13. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:      serviceName,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		ErrorHandler: middleware.ErrorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	} else {
		app.Use(middleware.DefaultCORS())
	}
	if cfg.CircuitBreaker.Enabled {
		app.Use(middleware.CircuitBreaker())
	}

	// Health checks
	healthService := health.NewService(&health.Config{
		Version:   serviceVersion,
		DB:        sqlDB,
		Cache:     appCache,
		QueueName: cfg.Queue.Provider,
		QueueURL:  cfg.Queue.URL,
	}, logger)
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Prometheus metrics
	if cfg.Prometheus.Enabled {
		metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			metricsHandler(c.Context())
			return nil
		})
	}

	// Assistant routes
	transcriber := voice.NewTranscriber(
		cfg.Collaborators.Transcription.APIKey,
		cfg.Collaborators.Transcription.BaseURL,
		cfg.Collaborators.Transcription.Model,
		logger)
	commandHandler := handlers.NewCommandHandler(pipe, transcriber, logger)
	app.Post("/send_command", commandHandler.SendCommand)
	app.Get("/", commandHandler.Greet)

	// WebSocket routes
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/updates", websocket.New(func(c *websocket.Conn) {
		clientID := c.Query("clientId", "guest")
		wsHub.AddClient(c, clientID)
	}))

	// 14. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 15. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	pipe.Stop()

	logger.Info("Server exited gracefully")
}

// fillFromVault overwrites empty API keys with values stored in Vault.
// Keys already set through config or environment win.
func fillFromVault(sm *vault.SecretManager, logger *zap.Logger, targets map[string]*string) {
	for name, dst := range targets {
		if *dst != "" {
			continue
		}
		key, err := sm.GetAPIKey(name)
		if err != nil {
			logger.Debug("Secret not found in Vault", zap.String("name", name))
			continue
		}
		*dst = key
	}
}

// publishResult pushes every processed command onto the queue so other
// services (dashboards, analytics) can consume the utterance stream.
func publishResult(mq queue.MessageQueue, res domain.Result, logger *zap.Logger) {
	payload, err := json.Marshal(res)
	if err != nil {
		logger.Error("Failed to marshal command result", zap.Error(err))
		return
	}
	if err := mq.Publish("aria.commands.processed", payload); err != nil {
		logger.Warn("Failed to publish command result", zap.Error(err))
	}
}
