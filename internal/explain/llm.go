package explain

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/explicasurf/surf-forecast-api/internal/llm"
)

const (
	llmUnavailable  = "Não foi possível obter a interpretação da IA no momento."
	llmInsufficient = "Dados insuficientes para gerar interpretação da IA."

	systemMessage = "Você é um assistente útil e experiente em surf, focado em segurança e clareza."
)

// LLMGenerator delegates the reading to a chat model, enriching the prompt
// with local knowledge about the spot. Any completion failure degrades to a
// fixed notice; the generator never errors.
type LLMGenerator struct {
	client llm.ChatClient
	model  string
	spot   forecast.Spot
}

func NewLLMGenerator(client llm.ChatClient, model string, spot forecast.Spot) *LLMGenerator {
	return &LLMGenerator{client: client, model: model, spot: spot}
}

func (g *LLMGenerator) Explain(ctx context.Context, level forecast.Level, merged forecast.MergedForecast, current *forecast.OpenWeatherNow) string {
	summary, ok := dataSummary(g.spot.Name, merged, current)
	if !ok {
		return llmInsufficient
	}

	resp, err := g.client.ChatCompletion(ctx, llm.ChatCompletionRequest{
		Model: g.model,
		Messages: []llm.Message{
			{Role: "system", Content: systemMessage},
			{Role: "user", Content: g.prompt(level, summary)},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		log.Printf("llm explanation failed: %v", err)
		return llmUnavailable
	}
	if len(resp.Choices) == 0 {
		log.Printf("llm explanation failed: response carried no choices")
		return llmUnavailable
	}
	return resp.Choices[0].Message.Content
}

// dataSummary flattens the merged forecast and the current conditions into
// the Portuguese data block the prompt embeds. Both inputs are required:
// without current weather or a wave reading there is nothing to interpret.
func dataSummary(spotName string, merged forecast.MergedForecast, current *forecast.OpenWeatherNow) (string, bool) {
	if current == nil || merged.Sources["waves"] == "" {
		return "", false
	}

	swellHeight := f64(merged.SwellHeightM)
	swellPeriod := f64(merged.SwellPeriodS)
	energy := swellHeight * swellHeight * swellPeriod

	var b strings.Builder
	fmt.Fprintf(&b, "Dados Climáticos Atuais para %s:\n", spotName)
	fmt.Fprintf(&b, "Temperatura: %.1f°C\n", f64(current.TempC))
	fmt.Fprintf(&b, "Condição: %s\n", current.Conditions)
	fmt.Fprintf(&b, "Velocidade do Vento: %.1f km/h\n", f64(current.WindSpeedKmh))
	fmt.Fprintf(&b, "Direção do Vento: %.0f° (graus)\n", f64(current.WindDirectionDeg))
	fmt.Fprintf(&b, "Previsão Oceânica para %s (Próximas Horas):\n", spotName)
	fmt.Fprintf(&b, "Altura da Onda (Swell): %.1f metros\n", swellHeight)
	fmt.Fprintf(&b, "Período da Onda (Swell): %.1f segundos\n", swellPeriod)
	fmt.Fprintf(&b, "Direção do Swell: %.1f° (graus)\n", f64(merged.SwellDirectionDeg))
	fmt.Fprintf(&b, "Direção da Onda: %.1f° (graus)\n", f64(merged.WaveDirectionDeg))
	fmt.Fprintf(&b, "Velocidade do Vento (Marinho): %.1f km/h\n", f64(merged.WindSpeedKmh))
	fmt.Fprintf(&b, "Direção do Vento (Marinho): %.1f° (graus)\n", f64(merged.WindDirectionDeg))
	fmt.Fprintf(&b, "Energia Estimada da Onda: %.2f (unidade arbitrária)\n", energy)
	return b.String(), true
}

func (g *LLMGenerator) prompt(level forecast.Level, summary string) string {
	var focus, tone string
	switch level {
	case forecast.LevelBeginner:
		focus = "Foque em segurança, se é um bom dia para aprender, e o básico (onda pequena/grande, vento forte/fraco, correnteza)."
		tone = "Use uma linguagem muito simples e encorajadora."
	case forecast.LevelIntermediate:
		focus = "Explique um pouco mais sobre a formação da onda, influência do vento, e como as condições afetam a performance."
		tone = "Use uma linguagem amigável e didática, com alguns termos técnicos."
	default:
		focus = "Detalhe nuances do swell, como a energia da onda afeta a quebra, e como as condições se comparam a dias épicos. Mencione a influência da direção do swell em Stella Maris (Leste puxa para direita, Sul/Sudeste puxa para esquerda)."
		tone = "Use uma linguagem técnica, mas acessível, com termos específicos do surf."
	}

	name := levelName(level)

	var b strings.Builder
	b.WriteString("Você é um especialista em surf e seu objetivo é traduzir dados técnicos de previsão de mar e clima para surfistas.\n")
	fmt.Fprintf(&b, "Com base nos seguintes dados de previsão para a praia de %s, forneça uma explicação clara e acessível para um surfista de nível %s.\n", g.spot.Name, name)
	b.WriteString(focus + "\n")
	b.WriteString(tone + "\n\n")
	b.WriteString("Considere as seguintes particularidades de Stella Maris:\n")
	b.WriteString("- Swell de Leste: Ondulação puxa para a direita (sentido Salvador).\n")
	b.WriteString("- Swell de Sul/Sudeste: Ondulação puxa para a esquerda (sentido Ipitanga).\n")
	b.WriteString("- Outono/Inverno: Mais vento, mais correnteza, mar mais forte.\n")
	b.WriteString("- Verão/Primavera: Menos correnteza, mais dias com pouco vento, mas pode ter ondas grandes.\n\n")
	b.WriteString("Dados de Previsão:\n")
	b.WriteString(summary)
	fmt.Fprintf(&b, "\nInterpretação para Surfista %s:\n", name)
	return b.String()
}
