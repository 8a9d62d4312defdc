package forecast

import "encoding/json"

// Level identifies the requester's surfing skill and controls how the
// explanation is framed.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// Levels lists the accepted skill levels in display order.
func Levels() []Level {
	return []Level{LevelBeginner, LevelIntermediate, LevelAdvanced}
}

// Upstream source names, used both as the per-point source field and as
// provenance values in MergedForecast.Sources.
const (
	SourceOpenMeteo   = "open-meteo"
	SourceStormglass  = "stormglass"
	SourceOpenWeather = "openweather"
)

// Spot is the fixed surf break every forecast refers to.
type Spot struct {
	Name string
	Lat  float64
	Lon  float64
}

// OpenMeteoPoint is the Open-Meteo marine forecast hour nearest to now.
// Open-Meteo has no separate swell series; its wind-wave series rides along
// and the merge step may repurpose it as a swell proxy. Nil fields were null
// in the upstream hourly arrays.
type OpenMeteoPoint struct {
	Time                 string   `json:"time"`
	WaveHeightM          *float64 `json:"wave_height_m"`
	WavePeriodS          *float64 `json:"wave_period_s"`
	WaveDirectionDeg     *float64 `json:"wave_direction_deg"`
	WindWaveHeightM      *float64 `json:"wind_wave_height_m"`
	WindWavePeriodS      *float64 `json:"wind_wave_period_s"`
	WindWaveDirectionDeg *float64 `json:"wind_wave_direction_deg"`
	Source               string   `json:"source"`
}

// StormglassPoint is the Stormglass forecast hour nearest to now with one
// scalar per quantity (multi-model values already resolved). Wind speed is
// normalized to km/h.
type StormglassPoint struct {
	Time              string   `json:"time"`
	WaveHeightM       *float64 `json:"wave_height_m"`
	WavePeriodS       *float64 `json:"wave_period_s"`
	WaveDirectionDeg  *float64 `json:"wave_direction_deg"`
	SwellHeightM      *float64 `json:"swell_height_m"`
	SwellPeriodS      *float64 `json:"swell_period_s"`
	SwellDirectionDeg *float64 `json:"swell_direction_deg"`
	WindSpeedKmh      *float64 `json:"wind_speed_kmh"`
	WindDirectionDeg  *float64 `json:"wind_direction_deg"`
	Source            string   `json:"source"`
}

// OpenWeatherNow is the current-conditions snapshot from OpenWeather.
// RainMm1h defaults to 0 when the upstream omits it: absence means "no rain
// recorded", not "unknown". Conditions carries the free-text description for
// the generative explanation flow.
type OpenWeatherNow struct {
	WindSpeedKmh     *float64 `json:"wind_speed_kmh"`
	WindDirectionDeg *float64 `json:"wind_direction_deg"`
	CloudCoverPct    *float64 `json:"cloud_cover_pct"`
	TempC            *float64 `json:"temp_c"`
	RainMm1h         float64  `json:"rain_mm_1h"`
	Conditions       string   `json:"conditions,omitempty"`
	Source           string   `json:"source"`
}

// MergedForecast is the canonical record produced by Merge. Each populated
// group has a matching Sources entry ("waves", "wind"); when no source
// supplied a group its fields are omitted and the key is absent. Sources is
// never nil.
type MergedForecast struct {
	Time              *string           `json:"time"`
	WaveHeightM       *float64          `json:"wave_height_m,omitempty"`
	WavePeriodS       *float64          `json:"wave_period_s,omitempty"`
	WaveDirectionDeg  *float64          `json:"wave_direction_deg,omitempty"`
	SwellHeightM      *float64          `json:"swell_height_m,omitempty"`
	SwellPeriodS      *float64          `json:"swell_period_s,omitempty"`
	SwellDirectionDeg *float64          `json:"swell_direction_deg,omitempty"`
	WindSpeedKmh      *float64          `json:"wind_speed_kmh,omitempty"`
	WindDirectionDeg  *float64          `json:"wind_direction_deg,omitempty"`
	Sources           map[string]string `json:"sources"`
}

// ForecastResult is the aggregate answer for one /api/explain request. The
// per-source points are included raw for transparency; absent sources encode
// as null rather than disappearing.
type ForecastResult struct {
	Spot        string           `json:"spot"`
	Level       Level            `json:"level"`
	TimeRef     *string          `json:"time_ref"`
	Merged      MergedForecast   `json:"merged"`
	OpenMeteo   *OpenMeteoPoint  `json:"open_meteo"`
	Stormglass  *StormglassPoint `json:"stormglass"`
	OpenWeather *OpenWeatherNow  `json:"openweather"`
	Tide        json.RawMessage  `json:"tide"`
	Explanation string           `json:"explanation_pt"`
}
