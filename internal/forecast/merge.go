package forecast

// Merge folds the available per-source points into one canonical record.
//
// The wave block goes to Stormglass when its point is present, otherwise to
// Open-Meteo when present; Open-Meteo's wind-wave series stands in for the
// missing swell series. The wind block goes to OpenWeather when it reported a
// wind speed, otherwise to Stormglass when it did. Time follows the winning
// wave source. Sources records which upstream supplied each block; a block
// nobody could fill is simply absent.
func Merge(premium *StormglassPoint, marine *OpenMeteoPoint, current *OpenWeatherNow) MergedForecast {
	merged := MergedForecast{Sources: map[string]string{}}

	switch {
	case premium != nil:
		merged.Time = &premium.Time
		merged.WaveHeightM = premium.WaveHeightM
		merged.WavePeriodS = premium.WavePeriodS
		merged.WaveDirectionDeg = premium.WaveDirectionDeg
		merged.SwellHeightM = premium.SwellHeightM
		merged.SwellPeriodS = premium.SwellPeriodS
		merged.SwellDirectionDeg = premium.SwellDirectionDeg
		merged.Sources["waves"] = SourceStormglass
	case marine != nil:
		merged.Time = &marine.Time
		merged.WaveHeightM = marine.WaveHeightM
		merged.WavePeriodS = marine.WavePeriodS
		merged.WaveDirectionDeg = marine.WaveDirectionDeg
		merged.SwellHeightM = marine.WindWaveHeightM
		merged.SwellPeriodS = marine.WindWavePeriodS
		merged.SwellDirectionDeg = marine.WindWaveDirectionDeg
		merged.Sources["waves"] = SourceOpenMeteo
	}

	switch {
	case current != nil && current.WindSpeedKmh != nil:
		merged.WindSpeedKmh = current.WindSpeedKmh
		merged.WindDirectionDeg = current.WindDirectionDeg
		merged.Sources["wind"] = SourceOpenWeather
	case premium != nil && premium.WindSpeedKmh != nil:
		merged.WindSpeedKmh = premium.WindSpeedKmh
		merged.WindDirectionDeg = premium.WindDirectionDeg
		merged.Sources["wind"] = SourceStormglass
	}

	return merged
}
