// Package explain turns a merged forecast into Portuguese guidance for a
// surfer. Two generators exist: a deterministic template and an LLM delegate.
// Both always produce presentable text; degraded data yields a fixed notice,
// never an error.
package explain

import (
	"context"
	"fmt"

	"github.com/explicasurf/surf-forecast-api/internal/forecast"
)

const insufficientData = "Sem dados suficientes no momento."

// TemplateGenerator renders a fixed reading of the merged forecast tuned to
// the surfer's level. It needs no network and is the wiring of choice when no
// LLM key is configured.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator { return &TemplateGenerator{} }

func (g *TemplateGenerator) Explain(_ context.Context, level forecast.Level, merged forecast.MergedForecast, _ *forecast.OpenWeatherNow) string {
	if merged.WaveHeightM == nil || *merged.WaveHeightM == 0 {
		return insufficientData
	}

	h := *merged.WaveHeightM
	p := f64(merged.WavePeriodS)
	w := f64(merged.WindSpeedKmh)
	d := f64(merged.WindDirectionDeg)

	switch level {
	case forecast.LevelBeginner:
		return fmt.Sprintf("O mar está com ~%.1f m e período de %.0fs. Vento %.0f km/h (%.0f°). Priorize período >10s e vento fraco.", h, p, w, d)
	case forecast.LevelIntermediate:
		return fmt.Sprintf("Altura %.1f m; Tp %.0fs; vento %.0f km/h @%.0f°. Se o vento girar terral, melhora bastante.", h, p, w, d)
	default:
		return fmt.Sprintf("Hs=%.1f m, Tp=%.0fs, W=%.0f km/h@%.0f°. Combine swell+vento na escolha do pico/horário.", h, p, w, d)
	}
}

// f64 reads an optional reading as a plain number, with 0 standing in for
// absent values in the rendered text.
func f64(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// levelName maps the API level tokens to the Portuguese words used in the
// generated text.
func levelName(level forecast.Level) string {
	switch level {
	case forecast.LevelBeginner:
		return "iniciante"
	case forecast.LevelIntermediate:
		return "intermediario"
	default:
		return "avancado"
	}
}
