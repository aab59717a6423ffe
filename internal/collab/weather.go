package collab

import (
	"context"
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"tripboard/internal/dates"
)

const (
	currentTTL      = 10 * time.Minute
	forecastTTL     = 30 * time.Minute
	maxForecastRows = 8
	firstSlotHour   = 10
)

// City is a point the weather is looked up for.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

func (c City) cacheKey() string {
	return strconv.FormatFloat(c.Lat, 'f', 4, 64) + "," + strconv.FormatFloat(c.Lng, 'f', 4, 64)
}

// Conditions is the current weather at a city.
type Conditions struct {
	City        string  `json:"city"`
	TempC       float64 `json:"temp_c"`
	FeelsLikeC  float64 `json:"feels_like_c"`
	Humidity    int     `json:"humidity"`
	Main        string  `json:"main"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	WindKmh     float64 `json:"wind_kmh"`
}

// Slot is one three-hour forecast entry.
type Slot struct {
	Time        time.Time `json:"time"`
	Hour        int       `json:"hour"`
	TempC       int       `json:"temp_c"`
	Main        string    `json:"main"`
	Description string    `json:"description"`
	WindKmh     int       `json:"wind_kmh"`
}

type owmCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmCurrent struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []owmCondition `json:"weather"`
	Wind    struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

type owmForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity int     `json:"humidity"`
		} `json:"main"`
		Weather []owmCondition `json:"weather"`
		Wind    struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	} `json:"list"`
}

// WeatherOptions configure NewWeatherClient.
type WeatherOptions struct {
	BaseURL string
	APIKey  string
	Retries int
	Client  HTTPClient
	Loc     *time.Location
	Clock   dates.Clock
}

// WeatherClient reads OpenWeather's current and forecast endpoints.
type WeatherClient struct {
	client   HTTPClient
	baseURL  string
	apiKey   string
	retries  int
	loc      *time.Location
	clock    dates.Clock
	current  *expirable.LRU[string, Conditions]
	forecast *expirable.LRU[string, owmForecast]
}

func NewWeatherClient(opts WeatherOptions) *WeatherClient {
	w := &WeatherClient{
		client:   opts.Client,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		apiKey:   opts.APIKey,
		retries:  opts.Retries,
		loc:      opts.Loc,
		clock:    opts.Clock,
		current:  expirable.NewLRU[string, Conditions](32, nil, currentTTL),
		forecast: expirable.NewLRU[string, owmForecast](32, nil, forecastTTL),
	}
	if w.client == nil {
		w.client = defaultHTTPClient()
	}
	if w.baseURL == "" {
		w.baseURL = "https://api.openweathermap.org"
	}
	if w.loc == nil {
		w.loc = time.Local
	}
	if w.clock == nil {
		w.clock = dates.SystemClock{}
	}
	return w
}

func (w *WeatherClient) endpoint(path string, c City) string {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.Lng, 'f', -1, 64))
	q.Set("appid", w.apiKey)
	q.Set("units", "metric")
	return w.baseURL + path + "?" + q.Encode()
}

// Configured reports whether an API key is set. Without one every call
// fails with ErrUnavailable.
func (w *WeatherClient) Configured() bool { return w.apiKey != "" }

// Cached returns the current conditions if a recent answer is held,
// without touching the network.
func (w *WeatherClient) Cached(c City) (Conditions, bool) {
	if w.apiKey == "" {
		return Conditions{}, false
	}
	return w.current.Peek(c.cacheKey())
}

// Current returns the conditions right now.
func (w *WeatherClient) Current(ctx context.Context, c City) (Conditions, error) {
	if w.apiKey == "" {
		return Conditions{}, unavailable("weather", errors.New("API key not configured"))
	}
	key := c.cacheKey()
	if v, ok := w.current.Get(key); ok {
		return v, nil
	}

	var raw owmCurrent
	if err := doJSON(ctx, w.client, "weather", w.retries, getRequest(w.endpoint("/data/2.5/weather", c)), &raw); err != nil {
		return Conditions{}, err
	}

	out := Conditions{
		City:       c.Name,
		TempC:      raw.Main.Temp,
		FeelsLikeC: raw.Main.FeelsLike,
		Humidity:   raw.Main.Humidity,
		WindKmh:    math.Round(raw.Wind.Speed*3.6*10) / 10,
	}
	if out.City == "" {
		out.City = raw.Name
	}
	if len(raw.Weather) > 0 {
		out.Main = raw.Weather[0].Main
		out.Description = raw.Weather[0].Description
		out.Icon = raw.Weather[0].Icon
	}
	w.current.Add(key, out)
	return out, nil
}

// Forecast returns today's slots from 10:00 onwards plus the following
// midnight, at most eight, as seen in the trip zone.
func (w *WeatherClient) Forecast(ctx context.Context, c City) ([]Slot, error) {
	if w.apiKey == "" {
		return nil, unavailable("forecast", errors.New("API key not configured"))
	}
	key := c.cacheKey()
	raw, ok := w.forecast.Get(key)
	if !ok {
		if err := doJSON(ctx, w.client, "forecast", w.retries, getRequest(w.endpoint("/data/2.5/forecast", c)), &raw); err != nil {
			return nil, err
		}
		w.forecast.Add(key, raw)
	}

	today := dates.DateOf(w.clock.Now().In(w.loc))
	tomorrow := dates.DateOf(today.Midnight(w.loc).AddDate(0, 0, 1))

	slots := make([]Slot, 0, maxForecastRows)
	for _, item := range raw.List {
		t := time.Unix(item.Dt, 0).In(w.loc)
		day := dates.DateOf(t)
		keep := (day.Equal(today) && t.Hour() >= firstSlotHour) || (day.Equal(tomorrow) && t.Hour() == 0)
		if !keep {
			continue
		}
		s := Slot{
			Time:    t,
			Hour:    t.Hour(),
			TempC:   int(math.Round(item.Main.Temp)),
			WindKmh: int(math.Round(item.Wind.Speed * 3.6)),
		}
		if len(item.Weather) > 0 {
			s.Main = item.Weather[0].Main
			s.Description = item.Weather[0].Description
		}
		slots = append(slots, s)
		if len(slots) == maxForecastRows {
			break
		}
	}
	return slots, nil
}

// Purge drops cached answers so the next call goes to the network.
func (w *WeatherClient) Purge() {
	w.current.Purge()
	w.forecast.Purge()
}
