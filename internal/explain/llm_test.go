package explain

import (
	"context"
	"errors"
	"testing"

	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/explicasurf/surf-forecast-api/internal/llm"
	"github.com/stretchr/testify/require"
)

type fakeChatClient struct {
	response  string
	err       error
	noChoices bool
	req       llm.ChatCompletionRequest
	calls     int
}

func (f *fakeChatClient) ChatCompletion(_ context.Context, req llm.ChatCompletionRequest) (*llm.ChatCompletionResponse, error) {
	f.calls++
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	if f.noChoices {
		return &llm.ChatCompletionResponse{}, nil
	}
	choice := llm.Choice{}
	choice.Message.Content = f.response
	return &llm.ChatCompletionResponse{Choices: []llm.Choice{choice}}, nil
}

func stellaMaris() forecast.Spot {
	return forecast.Spot{Name: "Stella Maris, Salvador-BA", Lat: -12.9437, Lon: -38.3539}
}

func currentSnapshot() *forecast.OpenWeatherNow {
	return &forecast.OpenWeatherNow{
		WindSpeedKmh:     fp(18.0),
		WindDirectionDeg: fp(80.0),
		CloudCoverPct:    fp(40.0),
		TempC:            fp(27.3),
		Conditions:       "céu limpo",
		Source:           forecast.SourceOpenWeather,
	}
}

func TestLLMExplainReturnsCompletionVerbatim(t *testing.T) {
	fake := &fakeChatClient{response: "Mar de 1,5 m com período longo: dia clássico em Stella Maris."}
	g := NewLLMGenerator(fake, "gpt-3.5-turbo", stellaMaris())

	got := g.Explain(context.Background(), forecast.LevelAdvanced, fullMerged(), currentSnapshot())
	require.Equal(t, "Mar de 1,5 m com período longo: dia clássico em Stella Maris.", got)
	require.Equal(t, 1, fake.calls)

	require.Equal(t, "gpt-3.5-turbo", fake.req.Model)
	require.InDelta(t, 0.7, fake.req.Temperature, 1e-9)
	require.Equal(t, 500, fake.req.MaxTokens)

	require.Len(t, fake.req.Messages, 2)
	require.Equal(t, "system", fake.req.Messages[0].Role)
	require.Equal(t, systemMessage, fake.req.Messages[0].Content)

	prompt := fake.req.Messages[1].Content
	require.Equal(t, "user", fake.req.Messages[1].Role)
	require.Contains(t, prompt, "praia de Stella Maris, Salvador-BA")
	require.Contains(t, prompt, "nível avancado")
	require.Contains(t, prompt, "Detalhe nuances do swell")
	require.Contains(t, prompt, "Swell de Leste: Ondulação puxa para a direita (sentido Salvador).")
	require.Contains(t, prompt, "Temperatura: 27.3°C")
	require.Contains(t, prompt, "Condição: céu limpo")
	require.Contains(t, prompt, "Altura da Onda (Swell): 1.3 metros")
	require.Contains(t, prompt, "Energia Estimada da Onda: 20.28 (unidade arbitrária)")
	require.Contains(t, prompt, "Interpretação para Surfista avancado:")
}

func TestLLMExplainLevelShapesThePrompt(t *testing.T) {
	fake := &fakeChatClient{response: "ok"}
	g := NewLLMGenerator(fake, "gpt-3.5-turbo", stellaMaris())

	g.Explain(context.Background(), forecast.LevelBeginner, fullMerged(), currentSnapshot())
	prompt := fake.req.Messages[1].Content
	require.Contains(t, prompt, "nível iniciante")
	require.Contains(t, prompt, "Foque em segurança")
	require.Contains(t, prompt, "linguagem muito simples e encorajadora")

	g.Explain(context.Background(), forecast.LevelIntermediate, fullMerged(), currentSnapshot())
	prompt = fake.req.Messages[1].Content
	require.Contains(t, prompt, "nível intermediario")
	require.Contains(t, prompt, "formação da onda")
}

func TestLLMExplainInsufficientData(t *testing.T) {
	fake := &fakeChatClient{response: "nunca usado"}
	g := NewLLMGenerator(fake, "gpt-3.5-turbo", stellaMaris())

	// No current conditions at all.
	got := g.Explain(context.Background(), forecast.LevelBeginner, fullMerged(), nil)
	require.Equal(t, "Dados insuficientes para gerar interpretação da IA.", got)

	// No wave block in the merged record.
	windOnly := forecast.MergedForecast{
		WindSpeedKmh: fp(18.0),
		Sources:      map[string]string{"wind": forecast.SourceOpenWeather},
	}
	got = g.Explain(context.Background(), forecast.LevelBeginner, windOnly, currentSnapshot())
	require.Equal(t, "Dados insuficientes para gerar interpretação da IA.", got)

	require.Zero(t, fake.calls)
}

func TestLLMExplainFallsBackWhenTheCallFails(t *testing.T) {
	fake := &fakeChatClient{err: errors.New("api down")}
	g := NewLLMGenerator(fake, "gpt-3.5-turbo", stellaMaris())

	got := g.Explain(context.Background(), forecast.LevelIntermediate, fullMerged(), currentSnapshot())
	require.Equal(t, "Não foi possível obter a interpretação da IA no momento.", got)
}

func TestLLMExplainFallsBackOnEmptyChoices(t *testing.T) {
	fake := &fakeChatClient{noChoices: true}
	g := NewLLMGenerator(fake, "gpt-3.5-turbo", stellaMaris())

	got := g.Explain(context.Background(), forecast.LevelAdvanced, fullMerged(), currentSnapshot())
	require.Equal(t, "Não foi possível obter a interpretação da IA no momento.", got)
}
