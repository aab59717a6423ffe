package log

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{" WARN ", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},
		{"info", LevelInfo},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseLevel(tt.in), "ParseLevel(%q)", tt.in)
	}
}

func TestKeyValuesAndLevels(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetJSON(false)
	SetLevel(LevelInfo)
	t.Cleanup(func() { SetLevel(LevelInfo) })

	Debug("hidden", "k", 1)
	assert.Empty(t, buf.String())

	Error("storage read failed", errors.New("boom"), "key", "trip-expenses", "dangling")
	out := buf.String()
	assert.Contains(t, out, "storage read failed")
	assert.Contains(t, out, "key=trip-expenses")
	assert.Contains(t, out, "error=boom")
	assert.NotContains(t, out, "dangling")

	buf.Reset()
	SetLevel(LevelDebug)
	Debug("shown", "k", 1)
	assert.Contains(t, buf.String(), "k=1")
}
