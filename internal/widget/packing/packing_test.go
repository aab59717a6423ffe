package packing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripboard/internal/model"
	"tripboard/internal/store"
)

func find(items []model.PackingItem, name string) (model.PackingItem, bool) {
	for _, it := range items {
		if it.Name == name {
			return it, true
		}
	}
	return model.PackingItem{}, false
}

func TestSeed(t *testing.T) {
	items := Seed()
	require.Len(t, items, 33)

	ids := make(map[string]bool)
	essential := 0
	for _, it := range items {
		assert.False(t, it.Packed)
		assert.True(t, it.Category.Valid(), it.Name)
		assert.False(t, ids[it.ID], "duplicate id for %s", it.Name)
		ids[it.ID] = true
		if it.Essential {
			essential++
		}
	}
	assert.Equal(t, 22, essential)
	assert.Equal(t, "Passport", items[0].Name)
	assert.Equal(t, "Book/entertainment", items[32].Name)
}

func TestToggleSurvivesReload(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemoryStore()

	l := Open(ctx, p, "poland-trip")
	passport, ok := find(l.Items(), "Passport")
	require.True(t, ok)

	got, err := l.Toggle(ctx, passport.ID)
	require.NoError(t, err)
	assert.True(t, got.Packed)

	reloaded := Open(ctx, p, "poland-trip")
	again, ok := find(reloaded.Items(), "Passport")
	require.True(t, ok)
	assert.Equal(t, passport.ID, again.ID)
	assert.True(t, again.Packed)

	got, err = reloaded.Toggle(ctx, passport.ID)
	require.NoError(t, err)
	assert.False(t, got.Packed)
}

func TestToggleUnknown(t *testing.T) {
	l := Open(context.Background(), store.NewMemoryStore(), "trip")
	_, err := l.Toggle(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnknownItem)
}

func TestAddAndDelete(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "trip")

	item, err := l.Add(ctx, "  Hiking boots ", model.PackingClothing)
	require.NoError(t, err)
	assert.Equal(t, "Hiking boots", item.Name)
	assert.False(t, item.Essential)
	assert.Len(t, l.Items(), 34)

	_, err = l.Add(ctx, "   ", model.PackingMisc)
	assert.ErrorIs(t, err, ErrInvalidItem)
	_, err = l.Add(ctx, "Skis", "sports")
	assert.ErrorIs(t, err, ErrInvalidItem)

	misc, err := l.Add(ctx, "Playing cards", "")
	require.NoError(t, err)
	assert.Equal(t, model.PackingMisc, misc.Category)

	require.NoError(t, l.Delete(ctx, item.ID))
	_, ok := find(l.Items(), "Hiking boots")
	assert.False(t, ok)

	passport, _ := find(l.Items(), "Passport")
	assert.ErrorIs(t, l.Delete(ctx, passport.ID), ErrEssential)
	assert.ErrorIs(t, l.Delete(ctx, "missing"), ErrUnknownItem)
	assert.Len(t, l.Items(), 34)
}

func TestProgress(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "trip")

	for _, name := range []string{"Passport", "Travel insurance", "Camera"} {
		it, ok := find(l.Items(), name)
		require.True(t, ok)
		_, err := l.Toggle(ctx, it.ID)
		require.NoError(t, err)
	}

	p := l.Progress()
	assert.Equal(t, 3, p.Packed)
	assert.Equal(t, 33, p.Total)
	assert.InDelta(t, 9.09, p.Percent, 0.01)

	cats := l.ByCategory()
	require.Len(t, cats, 6)
	assert.Equal(t, model.PackingDocuments, cats[0].Category)
	assert.Equal(t, 2, cats[0].Packed)
	assert.Equal(t, 6, cats[0].Total)
	assert.Equal(t, "Electronics", cats[2].Label)
	assert.Equal(t, 1, cats[2].Packed)
}

func TestProgressEmpty(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemoryStore()
	require.NoError(t, p.Save(ctx, "trip-packing", []byte(`[]`)))

	l := Open(ctx, p, "trip")
	assert.Equal(t, Progress{}, l.Progress())
	assert.Empty(t, l.ByCategory())
}
