package forecast

import (
	"context"
	"encoding/json"
)

// The source interfaces share one contract: (point, nil) is a usable reading,
// (nil, nil) means the source is disabled or had nothing for the requested
// hour, and (nil, err) is a failure the caller may log but must not propagate.
// A degraded source never blocks the aggregate answer.

// OpenMeteoSource serves the Open-Meteo marine hour nearest to now.
type OpenMeteoSource interface {
	Fetch(ctx context.Context, spot Spot) (*OpenMeteoPoint, error)
}

// StormglassSource serves the Stormglass hour nearest to now.
type StormglassSource interface {
	Fetch(ctx context.Context, spot Spot) (*StormglassPoint, error)
}

// OpenWeatherSource serves the current OpenWeather snapshot.
type OpenWeatherSource interface {
	Fetch(ctx context.Context, spot Spot) (*OpenWeatherNow, error)
}

// TideSource serves the configured tide feed verbatim. The payload is opaque:
// it is cached and relayed without interpretation.
type TideSource interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// Explainer turns a merged forecast into Portuguese guidance for the given
// skill level. Implementations must always return presentable text, falling
// back to a fixed notice rather than an error.
type Explainer interface {
	Explain(ctx context.Context, level Level, merged MergedForecast, current *OpenWeatherNow) string
}
