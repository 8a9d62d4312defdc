package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/explicasurf/surf-forecast-api/internal/forecast"
)

type AppConfig struct {
	// Spot is the fixed surf break all forecasts are served for.
	Spot forecast.Spot

	// Provider credentials; an empty key disables the provider.
	StormglassAPIKey  string
	OpenWeatherAPIKey string

	// Tide feed; an empty URL disables the provider.
	TideAPIURL   string
	TideLocation string

	// OpenAI access; an empty key selects the template explanation.
	OpenAIAPIKey string
	OpenAIModel  string

	// CacheTTL bounds how long upstream payloads are reused.
	CacheTTL time.Duration

	// HTTPTimeout applies to the shared outbound HTTP client.
	HTTPTimeout time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	lat, err := getenvFloat("LAT", -12.9437)
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("LON", -38.3539)
	if err != nil {
		return nil, err
	}
	cfg.Spot = forecast.Spot{
		Name: getenvDefault("SPOT_NAME", "Stella Maris, Salvador-BA"),
		Lat:  lat,
		Lon:  lon,
	}

	cfg.StormglassAPIKey = os.Getenv("STORMGLASS_API_KEY")
	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	cfg.TideAPIURL = os.Getenv("TIDE_API_URL")
	cfg.TideLocation = getenvDefault("TIDE_LOCATION", "Salvador")

	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.OpenAIModel = getenvDefault("OPENAI_MODEL", "gpt-3.5-turbo")

	cfg.CacheTTL, err = getenvDuration("CACHE_TTL", "3m")
	if err != nil {
		return nil, err
	}
	cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s")
	if err != nil {
		return nil, err
	}
	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
