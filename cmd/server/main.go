package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	openaiadapter "github.com/lethub/voice-gateway/internal/adapter/ai/openai"
	"github.com/lethub/voice-gateway/internal/adapter/http/fiber/handlers"
	"github.com/lethub/voice-gateway/internal/adapter/http/fiber/middleware"
	"github.com/lethub/voice-gateway/internal/adapter/weather"
	"github.com/lethub/voice-gateway/internal/service/audio"
	"github.com/lethub/voice-gateway/internal/service/functions"
	"github.com/lethub/voice-gateway/internal/service/health"
	"github.com/lethub/voice-gateway/internal/service/voice"
	"github.com/lethub/voice-gateway/pkg/config"
)

const serviceName = "voice-gateway"

func main() {
	// Local development drops provider keys in a .env file.
	godotenv.Load()

	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Starting voice gateway",
		zap.String("service", serviceName),
		zap.String("version", cfg.App.Version),
	)

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY is not set; speech and chat endpoints will fail")
	}

	// 3. Initialize Audio Staging (scratch directory for uploads)
	staging, err := audio.NewStaging(cfg.Storage.UploadDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize audio staging", zap.Error(err))
	}

	// 4. Initialize Provider Clients (constructed once, shared across requests)
	aiClient := openaiadapter.NewClient(cfg.OpenAI, logger)
	sessionClient := openaiadapter.NewSessionClient(cfg.OpenAI, logger)
	weatherClient := weather.NewClient(&weather.Config{
		BaseURL: cfg.Weather.BaseURL,
		APIKey:  cfg.Weather.APIKey,
		Timeout: cfg.Weather.Timeout,
	}, logger)

	// 5. Initialize Services
	registry := functions.NewRegistry(weatherClient, cfg.Weather.FallbackCity, logger)
	assistant := voice.NewAssistant(aiClient, aiClient, aiClient, weatherClient, registry, cfg.Weather.FallbackCity, logger)
	healthService := health.NewService(health.Config{
		Version:       cfg.App.Version,
		ScratchDir:    staging.Dir(),
		OpenAIKeySet:  cfg.OpenAI.APIKey != "",
		WeatherKeySet: cfg.Weather.APIKey != "",
	}, logger)

	// 6. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		BodyLimit:             cfg.HTTP.BodyLimit,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	if cfg.CORS.Enabled {
		app.Use(middleware.NewCORS(cfg.CORS))
	}

	// Health Check Endpoints
	health.NewFiberHandler(healthService).RegisterRoutes(app)

	// Metrics endpoint for Prometheus
	if cfg.Prometheus.Enabled {
		app.Get(cfg.Prometheus.Path, func(c *fiber.Ctx) error {
			handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
			handler(c.Context())
			return nil
		})
	}

	app.Get("/hello", func(c *fiber.Ctx) error {
		return c.SendString("Hello, world!")
	})

	// Speech endpoints
	speechHandler := handlers.NewSpeechHandler(aiClient, aiClient, staging, logger)
	app.Post("/stt", speechHandler.Transcribe)
	app.Post("/tts", speechHandler.Synthesize)

	// Voice pipeline endpoints
	voiceHandler := handlers.NewVoiceHandler(assistant, staging, logger)
	app.Post("/voice-ai", voiceHandler.Chat)
	app.Post("/voice-ai-weather", voiceHandler.Command)

	// Realtime function execution and session bootstrap
	functionHandler := handlers.NewFunctionHandler(registry, logger)
	app.Post("/execute-function", functionHandler.Execute)

	sessionHandler := handlers.NewSessionHandler(sessionClient, logger)
	app.Get("/session", sessionHandler.Create)

	// 7. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 8. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
