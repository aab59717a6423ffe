package store

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appLog "tripboard/internal/log"
)

type record struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Packed bool     `json:"packed"`
	Tags   []string `json:"tags"`
}

func seedRecords() []record {
	return []record{{ID: "seed", Name: "Passport"}}
}

// ports returns one instance of every adapter, each in a fresh location.
func ports(t *testing.T) map[string]Port {
	t.Helper()
	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	sqliteStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "db", "tripboard.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Port{
		"memory": NewMemoryStore(),
		"file":   fileStore,
		"sqlite": sqliteStore,
	}
}

func TestLoadPersistRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, p := range ports(t) {
		t.Run(name, func(t *testing.T) {
			got, origin := Load(ctx, p, "trip-packing", seedRecords)
			assert.Equal(t, FromSeed, origin)
			assert.Equal(t, seedRecords(), got)

			want := []record{
				{ID: "a", Name: "Camera", Packed: true, Tags: []string{"electronics"}},
				{ID: "b", Name: "Umbrella"},
			}
			require.NoError(t, Persist(ctx, p, "trip-packing", want))

			got, origin = Load(ctx, p, "trip-packing", seedRecords)
			assert.Equal(t, FromStore, origin)
			assert.Equal(t, want, got)

			// Wholesale overwrite.
			require.NoError(t, Persist(ctx, p, "trip-packing", want[:1]))
			got, _ = Load(ctx, p, "trip-packing", seedRecords)
			assert.Equal(t, want[:1], got)
		})
	}
}

func TestLoadDoesNotPersistSeed(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()

	_, origin := Load(ctx, p, "trip-alerts", seedRecords)
	assert.Equal(t, FromSeed, origin)

	_, err := p.Load(ctx, "trip-alerts")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadCorruptFallsBackToSeed(t *testing.T) {
	var buf bytes.Buffer
	appLog.SetOutput(&buf)

	ctx := context.Background()
	p := NewMemoryStore()
	require.NoError(t, p.Save(ctx, "trip-packing", []byte(`[{"id": "a",`)))

	got, origin := Load(ctx, p, "trip-packing", seedRecords)
	assert.Equal(t, FromSeed, origin)
	assert.Equal(t, seedRecords(), got)
	assert.Contains(t, buf.String(), "corrupt")
	assert.Contains(t, buf.String(), "trip-packing")
}

func TestScalarValue(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()
	require.NoError(t, Persist(ctx, p, "trip-budget", 1250.5))

	raw, err := p.Load(ctx, "trip-budget")
	require.NoError(t, err)
	assert.Equal(t, "1250.5", string(raw))

	got, origin := Load(ctx, p, "trip-budget", func() float64 { return 1000 })
	assert.Equal(t, FromStore, origin)
	assert.InDelta(t, 1250.5, got, 0.0001)
}

type failingPort struct {
	loadErr error
	saveErr error
	saves   int
}

func (f *failingPort) Load(context.Context, string) ([]byte, error) { return nil, f.loadErr }
func (f *failingPort) Save(context.Context, string, []byte) error {
	f.saves++
	return f.saveErr
}

func TestLoadUnreadableFallsBackToSeed(t *testing.T) {
	p := &failingPort{loadErr: errors.New("disk on fire")}
	got, origin := Load(context.Background(), p, "k", seedRecords)
	assert.Equal(t, FromSeed, origin)
	assert.Equal(t, seedRecords(), got)
}

func TestCellUpdateWritesThrough(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryStore()

	cell := Open(ctx, p, "trip-packing", seedRecords)
	assert.Equal(t, FromSeed, cell.Origin())
	assert.Equal(t, "trip-packing", cell.Key())

	_, err := cell.Update(ctx, func(items []record) ([]record, error) {
		out := append([]record(nil), items...)
		out[0].Packed = true
		return out, nil
	})
	require.NoError(t, err)

	// Simulated reload.
	reopened := Open(ctx, p, "trip-packing", seedRecords)
	assert.Equal(t, FromStore, reopened.Origin())
	assert.True(t, reopened.Get()[0].Packed)
}

func TestCellUpdateRejectedLeavesState(t *testing.T) {
	ctx := context.Background()
	p := &failingPort{loadErr: ErrNotFound}
	cell := Open(ctx, p, "k", seedRecords)

	sentinel := errors.New("nope")
	_, err := cell.Update(ctx, func([]record) ([]record, error) { return nil, sentinel })
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, seedRecords(), cell.Get())
	assert.Zero(t, p.saves)
}

func TestCellUpdateWriteFailureKeepsMemory(t *testing.T) {
	ctx := context.Background()
	p := &failingPort{loadErr: ErrNotFound, saveErr: errors.New("quota exceeded")}
	cell := Open(ctx, p, "k", seedRecords)

	_, err := cell.Update(ctx, func(items []record) ([]record, error) {
		return append(append([]record(nil), items...), record{ID: "x"}), nil
	})
	require.Error(t, err)
	assert.Len(t, cell.Get(), 2)
	assert.Equal(t, 1, p.saves)
}

func TestFileStoreRejectsEscapingKeys(t *testing.T) {
	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../etc", "a/b", ".hidden"} {
		assert.Error(t, fs.Save(context.Background(), key, []byte("1")), "key %q", key)
	}
}

func TestFileStorePermissions(t *testing.T) {
	dir := t.TempDir()
	fs, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, fs.Save(context.Background(), "trip-expenses", []byte("[]")))

	info, err := os.Stat(filepath.Join(dir, "trip-expenses.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestNew(t *testing.T) {
	for _, driver := range []string{DriverFile, DriverSQLite, DriverMemory} {
		p, closer, err := New(driver, t.TempDir())
		require.NoError(t, err, driver)
		require.NotNil(t, p)
		assert.NoError(t, closer.Close())
	}
	_, _, err := New("redis", t.TempDir())
	assert.Error(t, err)
}
