package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env"
	"gopkg.in/yaml.v3"

	"tripboard/internal/model"
	"tripboard/internal/store"
)

// NOTE: This file provides the configuration model and full YAML-based
// load/save behavior, including first-run config creation and 0600
// permissions. Secrets may be supplied through the environment instead of
// the file; see envOverrides.

// TripConfig describes the one trip this instance serves.
type TripConfig struct {
	Name string `yaml:"name" json:"name"`

	// Year completes the year-less day labels ("Tuesday, September 9th").
	Year int `yaml:"year" json:"year"`

	// Start / End are the first and last trip days, YYYY-MM-DD.
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`

	// LocalPerHome is the fixed approximate conversion used by the expense
	// ledger (PLN per GBP).
	LocalPerHome float64 `yaml:"local_per_home" json:"local_per_home"`

	// DefaultBudget is the home-currency budget before the user sets one.
	DefaultBudget float64 `yaml:"default_budget" json:"default_budget"`
}

// CityConfig maps itinerary days onto a city for weather lookups.
type CityConfig struct {
	Name string   `yaml:"name" json:"name"`
	Lat  float64  `yaml:"lat" json:"lat"`
	Lng  float64  `yaml:"lng" json:"lng"`
	Days []string `yaml:"days" json:"days"`
}

// StoreConfig selects the persistence backend for widget state.
type StoreConfig struct {
	// Driver is one of "file", "sqlite", "memory".
	Driver string `yaml:"driver" json:"driver"`
	// Path is the data directory.
	Path string `yaml:"path" json:"path"`
	// Namespace prefixes every widget key, e.g. "poland-trip-expenses".
	Namespace string `yaml:"namespace" json:"namespace"`
}

type WeatherConfig struct {
	APIKey  string `yaml:"api_key" json:"-"`
	BaseURL string `yaml:"base_url" json:"base_url"`
	Retries int    `yaml:"retries" json:"retries"`
}

type RatesConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Retries int    `yaml:"retries" json:"retries"`
}

type TranslateConfig struct {
	APIKey  string `yaml:"api_key" json:"-"`
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// EventFeedConfig describes a single ICS subscription of local events.
type EventFeedConfig struct {
	// URL is the ICS subscription endpoint.
	URL string `yaml:"url" json:"url"`
	// ID is an internal identifier used for de-dup and logging.
	ID string `yaml:"id" json:"id"`
	// Name is a human-friendly label shown in the UI.
	Name string `yaml:"name" json:"name"`
}

// NotifyConfig enables SNS delivery of freshly generated high-urgency alerts.
type NotifyConfig struct {
	SNSTopicARN string `yaml:"sns_topic_arn" json:"sns_topic_arn"`
}

// BasicAuthConfig holds HTTP Basic Auth credentials for the Web UI/API.
// PasswordHash (Argon2id, see `tripboard hash-password`) wins over Password.
type BasicAuthConfig struct {
	Username     string `yaml:"username" json:"username"`
	Password     string `yaml:"password,omitempty" json:"-"`
	PasswordHash string `yaml:"password_hash,omitempty" json:"-"`
}

// Config is the top-level application configuration.
type Config struct {
	// Listen is the HTTP listen address for the Web UI and API.
	Listen string `yaml:"listen" json:"listen"`

	// Timezone is the IANA timezone the trip happens in (e.g. "Europe/Warsaw").
	Timezone string `yaml:"timezone" json:"timezone"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" json:"log_level"`
	LogJSON  bool   `yaml:"log_json" json:"log_json"`

	// RefreshCron is a cron-style schedule string (e.g. "*/30 * * * *")
	// used to warm collaborator caches and re-fetch event feeds.
	RefreshCron string `yaml:"refresh" json:"refresh"`

	Trip    TripConfig     `yaml:"trip" json:"trip"`
	Flights []model.Flight `yaml:"flights" json:"flights"`
	Cities  []CityConfig   `yaml:"cities" json:"cities"`

	Store     StoreConfig       `yaml:"store" json:"store"`
	Weather   WeatherConfig     `yaml:"weather" json:"weather"`
	Rates     RatesConfig       `yaml:"rates" json:"rates"`
	Translate TranslateConfig   `yaml:"translate" json:"translate"`
	Events    []EventFeedConfig `yaml:"events" json:"events"`
	Notify    NotifyConfig      `yaml:"notify" json:"notify"`

	// BasicAuth, if non-nil, enables HTTP Basic Authentication on all endpoints
	// except /health.
	BasicAuth *BasicAuthConfig `yaml:"basic_auth,omitempty" json:"basic_auth,omitempty"`
}

// envOverrides lists the settings that may come from the environment.
// Non-empty values replace what the YAML file says.
type envOverrides struct {
	Listen          string `env:"TRIPBOARD_LISTEN"`
	WeatherAPIKey   string `env:"TRIPBOARD_WEATHER_API_KEY"`
	TranslateAPIKey string `env:"TRIPBOARD_TRANSLATE_API_KEY"`
	SNSTopicARN     string `env:"TRIPBOARD_SNS_TOPIC_ARN"`
	DataDir         string `env:"TRIPBOARD_DATA_DIR"`
}

const (
	defaultListen    = "127.0.0.1:8080"
	defaultTimezone  = "Europe/Warsaw"
	defaultRefresh   = "*/30 * * * *"
	defaultNamespace = "poland-trip"
	defaultDataDir   = "./data"
)

// DefaultConfig returns an in-memory default configuration for the
// September 2025 Kraków/Wrocław trip.
func DefaultConfig() *Config {
	return &Config{
		Listen:      defaultListen,
		Timezone:    defaultTimezone,
		LogLevel:    "info",
		RefreshCron: defaultRefresh,
		Trip: TripConfig{
			Name:          "Poland",
			Year:          2025,
			Start:         "2025-09-09",
			End:           "2025-09-15",
			LocalPerHome:  5,
			DefaultBudget: 1000,
		},
		Flights: []model.Flight{
			{Number: "FR5523", Date: "2025-09-09", Time: "16:05", From: "Bournemouth (BOH)", To: "Kraków (KRK)"},
			{Number: "FR3318", Date: "2025-09-15", Time: "19:10", From: "Wrocław (WRO)", To: "Bournemouth (BOH)"},
		},
		Cities: []CityConfig{
			{Name: "Kraków", Lat: 50.0647, Lng: 19.9450, Days: []string{"day1", "day2", "day3", "day4"}},
			{Name: "Wrocław", Lat: 51.1079, Lng: 17.0385, Days: []string{"day5", "day6", "day7"}},
		},
		Store: StoreConfig{
			Driver:    "file",
			Path:      defaultDataDir,
			Namespace: defaultNamespace,
		},
		Weather: WeatherConfig{
			BaseURL: "https://api.openweathermap.org",
			Retries: 1,
		},
		Rates: RatesConfig{
			BaseURL: "https://api.exchangerate-api.com",
			Retries: 2,
		},
		Translate: TranslateConfig{
			BaseURL: "https://translation.googleapis.com",
		},
		Events:    []EventFeedConfig{},
		BasicAuth: nil,
	}
}

// Normalize fills in missing/zero values with sensible defaults so that
// partially-filled configs still behave correctly.
func (c *Config) Normalize() {
	d := DefaultConfig()
	if c.Listen == "" {
		c.Listen = d.Listen
	}
	if c.Timezone == "" {
		c.Timezone = d.Timezone
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.RefreshCron == "" {
		c.RefreshCron = d.RefreshCron
	}
	if c.Trip.Name == "" {
		c.Trip.Name = d.Trip.Name
	}
	if c.Trip.Year <= 0 {
		c.Trip.Year = d.Trip.Year
	}
	if c.Trip.Start == "" {
		c.Trip.Start = d.Trip.Start
	}
	if c.Trip.End == "" {
		c.Trip.End = d.Trip.End
	}
	if c.Trip.LocalPerHome <= 0 {
		c.Trip.LocalPerHome = d.Trip.LocalPerHome
	}
	if c.Trip.DefaultBudget < 0 {
		c.Trip.DefaultBudget = 0
	}
	if c.Flights == nil {
		c.Flights = d.Flights
	}
	if c.Cities == nil {
		c.Cities = d.Cities
	}
	switch c.Store.Driver {
	case "file", "sqlite", "memory":
		// ok
	default:
		// Unknown value; fall back to file storage.
		c.Store.Driver = d.Store.Driver
	}
	if c.Store.Path == "" {
		c.Store.Path = d.Store.Path
	}
	if c.Store.Namespace == "" {
		c.Store.Namespace = d.Store.Namespace
	}
	if c.Weather.BaseURL == "" {
		c.Weather.BaseURL = d.Weather.BaseURL
	}
	if c.Weather.Retries < 0 {
		c.Weather.Retries = 0
	}
	if c.Rates.BaseURL == "" {
		c.Rates.BaseURL = d.Rates.BaseURL
	}
	if c.Rates.Retries < 0 {
		c.Rates.Retries = 0
	}
	if c.Translate.BaseURL == "" {
		c.Translate.BaseURL = d.Translate.BaseURL
	}
	if c.Events == nil {
		c.Events = []EventFeedConfig{}
	}
}

// ApplyEnv overlays non-empty environment values onto c.
func (c *Config) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if o.Listen != "" {
		c.Listen = o.Listen
	}
	if o.WeatherAPIKey != "" {
		c.Weather.APIKey = o.WeatherAPIKey
	}
	if o.TranslateAPIKey != "" {
		c.Translate.APIKey = o.TranslateAPIKey
	}
	if o.SNSTopicARN != "" {
		c.Notify.SNSTopicARN = o.SNSTopicARN
	}
	if o.DataDir != "" {
		c.Store.Path = o.DataDir
	}
	return nil
}

// Key returns the namespaced persistence key for a widget, e.g.
// Key("expenses") == "poland-trip-expenses".
func (c *Config) Key(widget string) string {
	return store.Key(c.Store.Namespace, widget)
}

// TripStart returns midnight of the first trip day in loc.
func (c *Config) TripStart(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.Trip.Start, loc)
}

// TripEnd returns midnight of the last trip day in loc.
func (c *Config) TripEnd(loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", c.Trip.End, loc)
}

// CityFor returns the city a day is spent in. Days not listed anywhere
// belong to the last configured city.
func (c *Config) CityFor(dayID string) (CityConfig, bool) {
	for _, city := range c.Cities {
		for _, id := range city.Days {
			if id == dayID {
				return city, true
			}
		}
	}
	if len(c.Cities) == 0 {
		return CityConfig{}, false
	}
	return c.Cities[len(c.Cities)-1], true
}

// City looks a city up by name.
func (c *Config) City(name string) (CityConfig, bool) {
	for _, city := range c.Cities {
		if city.Name == name {
			return city, true
		}
	}
	return CityConfig{}, false
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist:
//   - create parent directory if needed
//   - write a default config with 0600 perms
//   - return the default config
//   - If the file exists:
//   - read YAML and unmarshal into Config
//   - normalize defaults
//   - Environment overrides are applied last in both cases.
func Load(path string) (*Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile is Load without the environment overrides. Use it when the
// result is going to be saved back, so secrets from the environment do not
// end up in the file.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// First run: create default config file.
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				// Even if save fails, return cfg with error so caller can decide.
				return cfg, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the given configuration to the specified path.
//
// Implementation details:
//   - Ensures parent directory exists (0700).
//   - Marshals cfg to YAML.
//   - Writes atomically via a temp file + rename.
//   - Ensures final file permissions are 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tripboard-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	// Ensure we clean up temp file on error.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	// Flush and close before chmod/rename.
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save is a convenience method on Config that delegates to the package-level
// Save function.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
