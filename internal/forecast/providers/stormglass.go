package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/explicasurf/surf-forecast-api/internal/cache"
	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/sony/gobreaker"
)

// modelPreference orders the Stormglass forecast models from most to least
// trusted when resolving one scalar per quantity.
var modelPreference = []string{"noaa", "dwd", "meteo", "icon", "sg"}

// stormglassHour carries one forecast hour. Every quantity is a model→value
// map; values are pointers because models report null for gaps.
type stormglassHour struct {
	Time           string              `json:"time"`
	WaveHeight     map[string]*float64 `json:"waveHeight"`
	WavePeriod     map[string]*float64 `json:"wavePeriod"`
	WaveDirection  map[string]*float64 `json:"waveDirection"`
	SwellHeight    map[string]*float64 `json:"swellHeight"`
	SwellPeriod    map[string]*float64 `json:"swellPeriod"`
	SwellDirection map[string]*float64 `json:"swellDirection"`
	WindSpeed      map[string]*float64 `json:"windSpeed"`
	WindDirection  map[string]*float64 `json:"windDirection"`
}

type stormglassPayload struct {
	Hours []stormglassHour `json:"hours"`
}

// StormglassProvider implements forecast.StormglassSource. It is the premium
// source: without an API key it is disabled and reports nothing. Quota
// exhaustion (429) surfaces as an error the orchestrator degrades to absence.
type StormglassProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	store   *cache.Cache
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

func NewStormglassProvider(apiKey string, client *http.Client, store *cache.Cache) *StormglassProvider {
	return &StormglassProvider{
		apiKey:  apiKey,
		baseURL: "https://api.stormglass.io/v2/weather/point",
		client:  client,
		store:   store,
		circuit: newBreaker("stormglass"),
		now:     time.Now,
	}
}

func (p *StormglassProvider) Fetch(ctx context.Context, spot forecast.Spot) (*forecast.StormglassPoint, error) {
	if p.apiKey == "" {
		return nil, nil
	}

	key := cacheKey(forecast.SourceStormglass, spot.Lat, spot.Lon)

	payload, ok := p.cached(key)
	if !ok {
		buildRequest := func() (*http.Request, error) {
			values := url.Values{}
			values.Set("lat", fmt.Sprintf("%f", spot.Lat))
			values.Set("lng", fmt.Sprintf("%f", spot.Lon))
			values.Set("params", "waveHeight,wavePeriod,waveDirection,swellHeight,swellPeriod,swellDirection,windSpeed,windDirection")

			req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Authorization", p.apiKey)
			return req, nil
		}

		resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, fmt.Errorf("stormglass: decoding response: %w", err)
		}
		p.store.Set(key, payload)
	}

	return p.pointFor(payload)
}

// pointFor resolves the hour closest to now into a single-scalar point.
func (p *StormglassProvider) pointFor(payload stormglassPayload) (*forecast.StormglassPoint, error) {
	if len(payload.Hours) == 0 {
		return nil, fmt.Errorf("stormglass: empty hours payload")
	}

	times := make([]time.Time, len(payload.Hours))
	for i, h := range payload.Hours {
		t, err := parseForecastTime(h.Time)
		if err != nil {
			return nil, fmt.Errorf("stormglass: %w", err)
		}
		times[i] = t
	}

	h := payload.Hours[nearestIndex(times, p.now())]

	point := &forecast.StormglassPoint{
		Time:              h.Time,
		WaveHeightM:       chooseModelValue(h.WaveHeight, modelPreference),
		WavePeriodS:       chooseModelValue(h.WavePeriod, modelPreference),
		WaveDirectionDeg:  chooseModelValue(h.WaveDirection, modelPreference),
		SwellHeightM:      chooseModelValue(h.SwellHeight, modelPreference),
		SwellPeriodS:      chooseModelValue(h.SwellPeriod, modelPreference),
		SwellDirectionDeg: chooseModelValue(h.SwellDirection, modelPreference),
		WindDirectionDeg:  chooseModelValue(h.WindDirection, modelPreference),
		Source:            forecast.SourceStormglass,
	}
	if v := chooseModelValue(h.WindSpeed, modelPreference); v != nil {
		kmh := msToKmh(*v)
		point.WindSpeedKmh = &kmh
	}
	return point, nil
}

func (p *StormglassProvider) cached(key string) (stormglassPayload, bool) {
	v, ok := p.store.Get(key)
	if !ok {
		return stormglassPayload{}, false
	}
	payload, ok := v.(stormglassPayload)
	return payload, ok
}

// chooseModelValue resolves one scalar out of a model→value map: preferred
// models first, then the remaining models in sorted name order so the
// fallback stays deterministic.
func chooseModelValue(values map[string]*float64, prefs []string) *float64 {
	for _, m := range prefs {
		if v, ok := values[m]; ok && v != nil {
			return v
		}
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := values[name]; v != nil {
			return v
		}
	}
	return nil
}
