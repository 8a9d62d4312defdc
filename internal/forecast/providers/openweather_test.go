package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/explicasurf/surf-forecast-api/internal/cache"
	"github.com/explicasurf/surf-forecast-api/internal/forecast"
	"github.com/stretchr/testify/require"
)

const openWeatherBody = `{
	"weather": [{"description": "céu limpo"}],
	"main": {"temp": 27.3},
	"wind": {"speed": 5.0, "deg": 80.0},
	"clouds": {"all": 40.0},
	"rain": {"1h": 0.6}
}`

func newOpenWeatherServer(t *testing.T, body string, hits *int32, query *url.Values) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if query != nil {
			*query = r.URL.Query()
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

func TestOpenWeatherFetchDisabledWithoutKey(t *testing.T) {
	var hits int32
	srv := newOpenWeatherServer(t, openWeatherBody, &hits, nil)
	defer srv.Close()

	p := NewOpenWeatherProvider("", srv.Client(), cache.New(3*time.Minute))
	p.baseURL = srv.URL

	snap, err := p.Fetch(context.Background(), marineSpot())
	require.NoError(t, err)
	require.Nil(t, snap)
	require.Zero(t, atomic.LoadInt32(&hits))
}

func TestOpenWeatherFetchNormalizesSnapshot(t *testing.T) {
	var hits int32
	var query url.Values
	srv := newOpenWeatherServer(t, openWeatherBody, &hits, &query)
	defer srv.Close()

	p := NewOpenWeatherProvider("test-key", srv.Client(), cache.New(3*time.Minute))
	p.baseURL = srv.URL

	snap, err := p.Fetch(context.Background(), marineSpot())
	require.NoError(t, err)
	require.NotNil(t, snap)

	require.Equal(t, fp(18.0), snap.WindSpeedKmh)
	require.Equal(t, fp(80.0), snap.WindDirectionDeg)
	require.Equal(t, fp(40.0), snap.CloudCoverPct)
	require.Equal(t, fp(27.3), snap.TempC)
	require.Equal(t, 0.6, snap.RainMm1h)
	require.Equal(t, "céu limpo", snap.Conditions)
	require.Equal(t, forecast.SourceOpenWeather, snap.Source)

	require.Equal(t, "test-key", query.Get("appid"))
	require.Equal(t, "metric", query.Get("units"))
	require.NotEmpty(t, query.Get("lat"))
	require.NotEmpty(t, query.Get("lon"))
}

func TestOpenWeatherFetchMissingRainMeansZero(t *testing.T) {
	body := `{"weather":[],"main":{"temp":25.0},"wind":{"speed":3.0},"clouds":{"all":10.0}}`
	var hits int32
	srv := newOpenWeatherServer(t, body, &hits, nil)
	defer srv.Close()

	p := NewOpenWeatherProvider("test-key", srv.Client(), cache.New(3*time.Minute))
	p.baseURL = srv.URL

	snap, err := p.Fetch(context.Background(), marineSpot())
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.Zero(t, snap.RainMm1h)
	require.Nil(t, snap.WindDirectionDeg)
	require.Empty(t, snap.Conditions)
	require.Equal(t, fp(10.8), snap.WindSpeedKmh)
}

func TestOpenWeatherFetchServesSecondCallFromCache(t *testing.T) {
	var hits int32
	srv := newOpenWeatherServer(t, openWeatherBody, &hits, nil)
	defer srv.Close()

	p := NewOpenWeatherProvider("test-key", srv.Client(), cache.New(3*time.Minute))
	p.baseURL = srv.URL

	first, err := p.Fetch(context.Background(), marineSpot())
	require.NoError(t, err)
	second, err := p.Fetch(context.Background(), marineSpot())
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
	require.Equal(t, first, second)
}

func TestOpenWeatherFetchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p := NewOpenWeatherProvider("test-key", srv.Client(), cache.New(3*time.Minute))
	p.baseURL = srv.URL

	snap, err := p.Fetch(context.Background(), marineSpot())
	require.ErrorIs(t, err, errServerError)
	require.Nil(t, snap)
}
