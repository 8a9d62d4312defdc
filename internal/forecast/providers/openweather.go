package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/explicasurf/surf-forecast-api/internal/cache"
	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/sony/gobreaker"
)

type openWeatherPayload struct {
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp *float64 `json:"temp"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
		Deg   *float64 `json:"deg"`
	} `json:"wind"`
	Clouds struct {
		All *float64 `json:"all"`
	} `json:"clouds"`
	Rain map[string]float64 `json:"rain"`
}

// OpenWeatherProvider implements forecast.OpenWeatherSource for the current
// conditions snapshot. Without an API key it is disabled.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	store   *cache.Cache
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(apiKey string, client *http.Client, store *cache.Cache) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		client:  client,
		store:   store,
		circuit: newBreaker("openweather"),
	}
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, spot forecast.Spot) (*forecast.OpenWeatherNow, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	key := cacheKey(forecast.SourceOpenWeather, spot.Lat, spot.Lon)

	payload, ok := p.cached(key)
	if !ok {
		buildRequest := func() (*http.Request, error) {
			values := url.Values{}
			values.Set("lat", fmt.Sprintf("%f", spot.Lat))
			values.Set("lon", fmt.Sprintf("%f", spot.Lon))
			values.Set("appid", p.apiKey)
			values.Set("units", "metric")
			return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
		}

		resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("openweather: decoding response: %w", err)
		}
		p.store.Set(key, payload)
	}

	return snapshotFrom(payload), nil
}

func (p *OpenWeatherProvider) cached(key string) (openWeatherPayload, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return openWeatherPayload{}, false
	}
	payload, ok := v.(openWeatherPayload)
	return payload, ok
}

// snapshotFrom normalizes the payload: metric wind arrives in m/s and is
// converted to km/h; a missing rain block means no rain recorded, not unknown.
func snapshotFrom(payload openWeatherPayload) *forecast.OpenWeatherNow {
	snap := &forecast.OpenWeatherNow{
		WindDirectionDeg: payload.Wind.Deg,
		CloudCoverPct:    payload.Clouds.All,
		TempC:            payload.Main.Temp,
		RainMm1h:         payload.Rain["1h"],
		Source:           forecast.SourceOpenWeather,
	}
	if payload.Wind.Speed != nil {
		kmh := msToKmh(*payload.Wind.Speed)
		snap.WindSpeedKmh = &kmh
	}
	if len(payload.Weather) > 0 {
		snap.Conditions = payload.Weather[0].Description
	}
	return snap
}
