package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefaultFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "tripboard.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Warsaw", cfg.Timezone)
	assert.Equal(t, 2025, cfg.Trip.Year)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Trip.Name = "Lisbon"
	cfg.Trip.Year = 2027
	cfg.Store.Driver = "sqlite"
	cfg.Events = []EventFeedConfig{{ID: "city", Name: "City events", URL: "https://example.com/events.ics"}}
	cfg.BasicAuth = &BasicAuthConfig{Username: "me", PasswordHash: "$argon2id$..."}

	path := filepath.Join(t.TempDir(), "tripboard.yaml")
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Trip.Name)
	assert.Equal(t, 2027, got.Trip.Year)
	assert.Equal(t, "sqlite", got.Store.Driver)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "city", got.Events[0].ID)
	require.NotNil(t, got.BasicAuth)
	assert.Equal(t, "$argon2id$...", got.BasicAuth.PasswordHash)
	require.Len(t, got.Flights, 2)
	assert.Equal(t, "FR5523", got.Flights[0].Number)
}

func TestNormalizeFillsPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: 0.0.0.0:9000\nstore:\n  driver: redis\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9000", cfg.Listen)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, "poland-trip", cfg.Store.Namespace)
	assert.InDelta(t, 5.0, cfg.Trip.LocalPerHome, 0.0001)
	assert.Equal(t, 1, cfg.Weather.Retries)
	assert.Equal(t, 2, cfg.Rates.Retries)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRIPBOARD_WEATHER_API_KEY", "weather-key")
	t.Setenv("TRIPBOARD_LISTEN", ":7070")
	t.Setenv("TRIPBOARD_SNS_TOPIC_ARN", "arn:aws:sns:eu-central-1:123:trip")

	cfg, err := Load(filepath.Join(t.TempDir(), "tripboard.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "weather-key", cfg.Weather.APIKey)
	assert.Equal(t, ":7070", cfg.Listen)
	assert.Equal(t, "arn:aws:sns:eu-central-1:123:trip", cfg.Notify.SNSTopicARN)
}

func TestLoadFileIgnoresEnv(t *testing.T) {
	t.Setenv("TRIPBOARD_WEATHER_API_KEY", "weather-key")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "tripboard.yaml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Weather.APIKey)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tripboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte("listen: [unterminated"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestHelpers(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "poland-trip-packing", cfg.Key("packing"))

	city, ok := cfg.CityFor("day2")
	require.True(t, ok)
	assert.Equal(t, "Kraków", city.Name)

	city, ok = cfg.CityFor("day6")
	require.True(t, ok)
	assert.Equal(t, "Wrocław", city.Name)

	city, ok = cfg.CityFor("bonus-day")
	require.True(t, ok)
	assert.Equal(t, "Wrocław", city.Name)

	_, ok = cfg.City("Gdańsk")
	assert.False(t, ok)

	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	start, err := cfg.TripStart(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 9, 0, 0, 0, 0, loc), start)
}
