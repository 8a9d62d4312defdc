package forecast

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Service fans one request out to every configured source and assembles the
// aggregate answer. Sources are wired once at startup; a disabled source is
// still wired and simply reports nothing.
type Service struct {
	spot      Spot
	marine    OpenMeteoSource
	premium   StormglassSource
	current   OpenWeatherSource
	tide      TideSource
	explainer Explainer
}

// NewService creates a new Service.
func NewService(spot Spot, marine OpenMeteoSource, premium StormglassSource, current OpenWeatherSource, tide TideSource, explainer Explainer) *Service {
	return &Service{
		spot:      spot,
		marine:    marine,
		premium:   premium,
		current:   current,
		tide:      tide,
		explainer: explainer,
	}
}

// Explain gathers all sources concurrently, merges whatever arrived, and
// renders the level-appropriate Portuguese explanation. Source failures are
// logged and degrade to absence; the aggregate answer itself never fails.
func (s *Service) Explain(ctx context.Context, level Level) ForecastResult {
	var (
		wg      sync.WaitGroup
		marine  *OpenMeteoPoint
		premium *StormglassPoint
		current *OpenWeatherNow
		tide    json.RawMessage
	)

	log.Printf("DEBUG: Explain called for %s at level %s", s.spot.Name, level)

	// Each goroutine writes its own slot, so the WaitGroup alone is enough.
	wg.Add(4)
	go func() {
		defer wg.Done()
		p, err := s.marine.Fetch(ctx, s.spot)
		if err != nil {
			log.Printf("open-meteo fetch failed for %s: %v", s.spot.Name, err)
			return
		}
		marine = p
	}()
	go func() {
		defer wg.Done()
		p, err := s.premium.Fetch(ctx, s.spot)
		if err != nil {
			log.Printf("stormglass fetch failed for %s: %v", s.spot.Name, err)
			return
		}
		premium = p
	}()
	go func() {
		defer wg.Done()
		p, err := s.current.Fetch(ctx, s.spot)
		if err != nil {
			log.Printf("openweather fetch failed for %s: %v", s.spot.Name, err)
			return
		}
		current = p
	}()
	go func() {
		defer wg.Done()
		raw, err := s.tide.Fetch(ctx)
		if err != nil {
			log.Printf("tide fetch failed: %v", err)
			return
		}
		tide = raw
	}()
	wg.Wait()

	merged := Merge(premium, marine, current)

	return ForecastResult{
		Spot:        s.spot.Name,
		Level:       level,
		TimeRef:     merged.Time,
		Merged:      merged,
		OpenMeteo:   marine,
		Stormglass:  premium,
		OpenWeather: current,
		Tide:        tide,
		Explanation: s.explainer.Explain(ctx, level, merged, current),
	}
}

// Tide returns the raw payload of the configured tide feed.
func (s *Service) Tide(ctx context.Context) (json.RawMessage, error) {
	return s.tide.Fetch(ctx)
}
