package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	httpapi "github.com/explicasurf/surf-forecast-api/internal/api/http"
	"github.com/explicasurf/surf-forecast-api/internal/cache"
	"github.com/explicasurf/surf-forecast-api/internal/config"
	"github.com/explicasurf/surf-forecast-api/internal/explain"
	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/explicasurf/surf-forecast-api/internal/forecast/providers"
	"github.com/explicasurf/surf-forecast-api/internal/llm"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// One in-memory TTL cache shared by every provider.
	store := cache.New(cfg.CacheTTL)

	marine := providers.NewOpenMeteoProvider(httpClient, store)
	premium := providers.NewStormglassProvider(cfg.StormglassAPIKey, httpClient, store)
	current := providers.NewOpenWeatherProvider(cfg.OpenWeatherAPIKey, httpClient, store)
	tide := providers.NewTideProvider(cfg.TideAPIURL, cfg.TideLocation, httpClient, store)

	// Explanation generator: LLM when a key is configured, template otherwise.
	var explainer forecast.Explainer = explain.NewTemplateGenerator()
	if cfg.OpenAIAPIKey != "" {
		chat := llm.NewClient(cfg.OpenAIAPIKey, llm.WithHTTPClient(httpClient))
		explainer = explain.NewLLMGenerator(chat, cfg.OpenAIModel, cfg.Spot)
		log.Printf("INFO: LLM explanations enabled (model %s)", cfg.OpenAIModel)
	}

	// Core service orchestrating providers and the explanation generator.
	service := forecast.NewService(cfg.Spot, marine, premium, current, tide, explainer)

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "surf-forecast-api",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())

	// API routes.
	httpapi.RegisterRoutes(app, service)

	// Start server with graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
