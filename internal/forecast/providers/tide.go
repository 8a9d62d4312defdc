package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/explicasurf/surf-forecast-api/internal/cache"
	"github.com/sony/gobreaker"
)

// TideProvider implements forecast.TideSource against a pluggable tide feed.
// The payload is opaque: validated as JSON and relayed byte for byte. Without
// a base URL the provider is disabled.
type TideProvider struct {
	baseURL  string
	location string
	client   *http.Client
	store    *cache.Cache
	circuit  *gobreaker.CircuitBreaker
}

func NewTideProvider(baseURL, location string, client *http.Client, store *cache.Cache) *TideProvider {
	return &TideProvider{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		location: location,
		client:   client,
		store:    store,
		circuit:  newBreaker("tide"),
	}
}

func (p *TideProvider) Fetch(ctx context.Context) (json.RawMessage, error) {
	if p.baseURL == "" {
		return nil, nil
	}

	key := "tide:" + p.location
	if v, ok := p.store.Get(key); ok {
		if raw, ok := v.(json.RawMessage); ok {
			return raw, nil
		}
	}

	buildRequest := func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, p.baseURL+"/"+url.PathEscape(p.location), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("tide: reading response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("tide: response is not valid json")
	}

	raw := json.RawMessage(body)
	p.store.Set(key, raw)
	return raw, nil
}
