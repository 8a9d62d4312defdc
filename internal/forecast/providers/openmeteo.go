package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/explicasurf/surf-forecast-api/internal/cache"
	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/sony/gobreaker"
)

// openMeteoPayload is the decoded marine response. The payload is what gets
// cached, so the nearest-hour selection re-runs against the current clock on
// every request. Value arrays use pointers: upstream encodes gaps as null.
type openMeteoPayload struct {
	Hourly struct {
		Time              []string   `json:"time"`
		WaveHeight        []*float64 `json:"wave_height"`
		WavePeriod        []*float64 `json:"wave_period"`
		WaveDirection     []*float64 `json:"wave_direction"`
		WindWaveHeight    []*float64 `json:"wind_wave_height"`
		WindWavePeriod    []*float64 `json:"wind_wave_period"`
		WindWaveDirection []*float64 `json:"wind_wave_direction"`
	} `json:"hourly"`
}

// OpenMeteoProvider implements forecast.OpenMeteoSource against the Open-Meteo
// marine API. The endpoint is keyless and therefore always enabled.
type OpenMeteoProvider struct {
	baseURL string
	client  *http.Client
	store   *cache.Cache
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewOpenMeteoProvider(client *http.Client, store *cache.Cache) *OpenMeteoProvider {
	return &OpenMeteoProvider{
		baseURL: "https://marine-api.open-meteo.com/v1/marine",
		client:  client,
		store:   store,
		circuit: newBreaker("open-meteo"),
		now:     time.Now,
	}
}

func (p *OpenMeteoProvider) Fetch(ctx context.Context, spot forecast.Spot) (*forecast.OpenMeteoPoint, error) {
	key := cacheKey(forecast.SourceOpenMeteo, spot.Lat, spot.Lon)

	payload, ok := p.cached(key)
	if !ok {
		buildRequest := func() (*http.Request, error) {
			values := url.Values{}
			values.Set("latitude", fmt.Sprintf("%f", spot.Lat))
			values.Set("longitude", fmt.Sprintf("%f", spot.Lon))
			values.Set("hourly", "wave_height,wave_period,wave_direction,wind_wave_height,wind_wave_period,wind_wave_direction")
			values.Set("length_unit", "metric")
			values.Set("timezone", "auto")
			values.Set("forecast_days", "1")
			return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
		}

		resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("open-meteo: decoding response: %w", err)
		}
		p.store.Set(key, payload)
	}

	return p.pointFor(payload)
}

// pointFor picks the hour closest to now out of the series.
func (p *OpenMeteoProvider) pointFor(payload openMeteoPayload) (*forecast.OpenMeteoPoint, error) {
	hourly := payload.Hourly
	if len(hourly.Time) == 0 {
		return nil, nil
	}

	times := make([]time.Time, len(hourly.Time))
	for i, raw := range hourly.Time {
		t, err := parseForecastTime(raw)
		if err != nil {
			return nil, fmt.Errorf("open-meteo: %w", err)
		}
		times[i] = t
	}

	i := nearestIndex(times, p.now())
	return &forecast.OpenMeteoPoint{
		Time:                 hourly.Time[i],
		WaveHeightM:          at(hourly.WaveHeight, i),
		WavePeriodS:          at(hourly.WavePeriod, i),
		WaveDirectionDeg:     at(hourly.WaveDirection, i),
		WindWaveHeightM:      at(hourly.WindWaveHeight, i),
		WindWavePeriodS:      at(hourly.WindWavePeriod, i),
		WindWaveDirectionDeg: at(hourly.WindWaveDirection, i),
		Source:               forecast.SourceOpenMeteo,
	}, nil
}

func (p *OpenMeteoProvider) cached(key string) (openMeteoPayload, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return openMeteoPayload{}, false
	}
	payload, ok := v.(openMeteoPayload)
	return payload, ok
}

// at guards ragged series: upstream occasionally ships value arrays shorter
// than the time axis.
func at(series []*float64, i int) *float64 {
	if i < 0 || i >= len(series) {
		return nil
	}
	return series[i]
}
