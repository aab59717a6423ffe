package collab

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripboard/internal/dates"
)

var krakow = City{Name: "Kraków", Lat: 50.0647, Lng: 19.9450}

func warsaw(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	return loc
}

func TestWeatherCurrent(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/data/2.5/weather", r.URL.Path)
		assert.Equal(t, "secret", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		assert.Equal(t, "50.0647", r.URL.Query().Get("lat"))
		_, _ = io.WriteString(w, `{"name":"Krakow","main":{"temp":18.4,"feels_like":17.9,"humidity":71},"weather":[{"main":"Clouds","description":"broken clouds","icon":"04d"}],"wind":{"speed":5}}`)
	}))
	defer srv.Close()

	wc := NewWeatherClient(WeatherOptions{BaseURL: srv.URL, APIKey: "secret"})
	got, err := wc.Current(context.Background(), krakow)
	require.NoError(t, err)
	assert.Equal(t, "Kraków", got.City)
	assert.InDelta(t, 18.4, got.TempC, 0.001)
	assert.Equal(t, "Clouds", got.Main)
	assert.InDelta(t, 18.0, got.WindKmh, 0.001)

	_, err = wc.Current(context.Background(), krakow)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second call served from cache")

	wc.Purge()
	_, err = wc.Current(context.Background(), krakow)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestWeatherWithoutKeyIsUnavailable(t *testing.T) {
	wc := NewWeatherClient(WeatherOptions{BaseURL: "http://127.0.0.1:1"})
	_, err := wc.Current(context.Background(), krakow)
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = wc.Forecast(context.Background(), krakow)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWeatherRetriesServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		_, _ = io.WriteString(w, `{"main":{"temp":12},"weather":[],"wind":{"speed":1}}`)
	}))
	defer srv.Close()

	wc := NewWeatherClient(WeatherOptions{BaseURL: srv.URL, APIKey: "k", Retries: 1})
	got, err := wc.Current(context.Background(), krakow)
	require.NoError(t, err)
	assert.InDelta(t, 12.0, got.TempC, 0.001)
	assert.Equal(t, int32(2), hits.Load())
}

func TestWeatherDoesNotRetryClientErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	wc := NewWeatherClient(WeatherOptions{BaseURL: srv.URL, APIKey: "k", Retries: 3})
	_, err := wc.Current(context.Background(), krakow)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(1), hits.Load())
}

func TestForecastSlots(t *testing.T) {
	loc := warsaw(t)
	at := func(day, hour int) int64 {
		return time.Date(2025, 9, day, hour, 0, 0, 0, loc).Unix()
	}
	items := []map[string]any{}
	for _, ts := range []int64{at(11, 8), at(11, 11), at(11, 14), at(11, 23), at(12, 0), at(12, 3), at(13, 0)} {
		items = append(items, map[string]any{
			"dt":      ts,
			"main":    map[string]any{"temp": 17.6, "humidity": 60},
			"weather": []map[string]any{{"main": "Rain", "description": "light rain"}},
			"wind":    map[string]any{"speed": 2.5},
		})
	}
	body, err := json.Marshal(map[string]any{"list": items})
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/data/2.5/forecast", r.URL.Path)
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	clock := dates.FixedClock(time.Date(2025, 9, 11, 7, 0, 0, 0, loc))
	wc := NewWeatherClient(WeatherOptions{BaseURL: srv.URL, APIKey: "k", Loc: loc, Clock: clock})
	slots, err := wc.Forecast(context.Background(), krakow)
	require.NoError(t, err)

	hours := make([]int, 0, len(slots))
	for _, s := range slots {
		hours = append(hours, s.Hour)
	}
	assert.Equal(t, []int{11, 14, 23, 0}, hours)
	assert.Equal(t, 18, slots[0].TempC)
	assert.Equal(t, 9, slots[0].WindKmh)
	assert.Equal(t, "Rain", slots[0].Main)
}

func TestForecastCapsAtEight(t *testing.T) {
	loc := warsaw(t)
	items := []map[string]any{}
	for m := 0; m < 12; m++ {
		ts := time.Date(2025, 9, 11, 12, m, 0, 0, loc).Unix()
		items = append(items, map[string]any{"dt": ts, "main": map[string]any{"temp": 10}, "wind": map[string]any{"speed": 0}})
	}
	body, err := json.Marshal(map[string]any{"list": items})
	require.NoError(t, err)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write(body) }))
	defer srv.Close()

	clock := dates.FixedClock(time.Date(2025, 9, 11, 9, 0, 0, 0, loc))
	wc := NewWeatherClient(WeatherOptions{BaseURL: srv.URL, APIKey: "k", Loc: loc, Clock: clock})
	slots, err := wc.Forecast(context.Background(), krakow)
	require.NoError(t, err)
	assert.Len(t, slots, 8)
}

func TestRates(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "/v4/latest/GBP", r.URL.Path)
		_, _ = io.WriteString(w, `{"base":"GBP","rates":{"PLN":4.97,"EUR":1.17}}`)
	}))
	defer srv.Close()

	rc := NewRatesClient(RatesOptions{BaseURL: srv.URL})
	rate, err := rc.Rate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4.97", rate.String())

	_, err = rc.Rate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestRatesMissingPLN(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"rates":{"EUR":1.17}}`)
	}))
	defer srv.Close()

	_, err := NewRatesClient(RatesOptions{BaseURL: srv.URL}).Rate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRatesGarbageBodyRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = io.WriteString(w, `<html>oops</html>`)
	}))
	defer srv.Close()

	_, err := NewRatesClient(RatesOptions{BaseURL: srv.URL, Retries: 2}).Rate(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), hits.Load())
}

func TestConvert(t *testing.T) {
	rate := decimal.RequireFromString("4.97")

	pln, err := Convert(decimal.NewFromInt(100), rate, HomeToLocal)
	require.NoError(t, err)
	assert.Equal(t, "497", pln.String())

	gbp, err := Convert(decimal.NewFromInt(100), rate, LocalToHome)
	require.NoError(t, err)
	assert.Equal(t, "20.12", gbp.StringFixed(2))

	_, err = Convert(decimal.NewFromInt(1), decimal.Zero, HomeToLocal)
	assert.Error(t, err)
	_, err = Convert(decimal.NewFromInt(1), rate, "sideways")
	assert.Error(t, err)
}

func TestTranslatorDictionaryFirst(t *testing.T) {
	tr := NewTranslator(TranslatorOptions{BaseURL: "http://127.0.0.1:1"})

	got := tr.Translate(context.Background(), "  Thank You ", English)
	assert.Equal(t, Translation{Text: "dziękuję", From: English, To: Polish, Source: SourceDictionary}, got)

	got = tr.Translate(context.Background(), "piwo", Polish)
	assert.Equal(t, "beer", got.Text)
	assert.Equal(t, English, got.To)

	got = tr.Translate(context.Background(), "   ", English)
	assert.Equal(t, SourceEcho, got.Source)
	assert.Empty(t, got.Text)
}

func TestTranslatorService(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/language/translate/v2", r.URL.Path)
		assert.Equal(t, "gkey", r.URL.Query().Get("key"))

		var req googleRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, English, req.Source)
		assert.Equal(t, Polish, req.Target)
		_, _ = io.WriteString(w, `{"data":{"translations":[{"translatedText":"Gdzie jest dworzec?"}]}}`)
	}))
	defer srv.Close()

	tr := NewTranslator(TranslatorOptions{BaseURL: srv.URL, APIKey: "gkey"})
	got := tr.Translate(context.Background(), "Where is the station?", English)
	assert.Equal(t, "Gdzie jest dworzec?", got.Text)
	assert.Equal(t, SourceService, got.Source)

	tr.Translate(context.Background(), "Where is the station?", English)
	assert.Equal(t, int32(1), hits.Load())
}

func TestTranslatorFailureEchoesInput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota", http.StatusForbidden)
	}))
	defer srv.Close()

	tr := NewTranslator(TranslatorOptions{BaseURL: srv.URL, APIKey: "gkey"})
	got := tr.Translate(context.Background(), "Where is the station?", English)
	assert.Equal(t, "Where is the station?", got.Text)
	assert.Equal(t, SourceEcho, got.Source)

	noKey := NewTranslator(TranslatorOptions{BaseURL: srv.URL})
	assert.Equal(t, SourceEcho, noKey.Translate(context.Background(), "Good night", English).Source)
}
