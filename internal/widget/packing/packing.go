// Package packing is the trip's packing checklist.
package packing

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tripboard/internal/model"
	"tripboard/internal/store"
)

var (
	// ErrUnknownItem is returned for ids not on the list.
	ErrUnknownItem = errors.New("unknown packing item")
	// ErrEssential is returned when deleting a catalogue essential.
	ErrEssential = errors.New("essential items cannot be removed")
	// ErrInvalidItem is returned by Add for a blank name or unknown category.
	ErrInvalidItem = errors.New("invalid packing item")
)

// Seed returns the default catalogue with fresh ids, nothing packed.
func Seed() []model.PackingItem {
	items := make([]model.PackingItem, 0, len(catalogue))
	for _, c := range catalogue {
		items = append(items, model.PackingItem{
			ID:        uuid.NewString(),
			Name:      c.name,
			Category:  c.category,
			Essential: c.essential,
		})
	}
	return items
}

// Progress counts packed items.
type Progress struct {
	Packed  int     `json:"packed"`
	Total   int     `json:"total"`
	Percent float64 `json:"percent"`
}

func progressOf(packed, total int) Progress {
	p := Progress{Packed: packed, Total: total}
	if total > 0 {
		p.Percent = float64(packed) / float64(total) * 100
	}
	return p
}

// CategoryProgress is Progress for one category.
type CategoryProgress struct {
	Category model.PackingCategory `json:"category"`
	Label    string                `json:"label"`
	Progress
}

// List owns the "<ns>-packing" key.
type List struct {
	items *store.Cell[[]model.PackingItem]
}

func Open(ctx context.Context, p store.Port, namespace string) *List {
	return &List{items: store.Open(ctx, p, store.Key(namespace, "packing"), Seed)}
}

// Items returns a copy of the checklist in display order.
func (l *List) Items() []model.PackingItem {
	cur := l.items.Get()
	out := make([]model.PackingItem, len(cur))
	copy(out, cur)
	return out
}

// Toggle flips the packed flag of id and returns the updated item.
func (l *List) Toggle(ctx context.Context, id string) (model.PackingItem, error) {
	var updated model.PackingItem
	_, err := l.items.Update(ctx, func(cur []model.PackingItem) ([]model.PackingItem, error) {
		next := make([]model.PackingItem, len(cur))
		copy(next, cur)
		for i := range next {
			if next[i].ID == id {
				next[i].Packed = !next[i].Packed
				updated = next[i]
				return next, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	})
	return updated, err
}

// Add appends a user item. User items are never essential.
func (l *List) Add(ctx context.Context, name string, category model.PackingCategory) (model.PackingItem, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.PackingItem{}, fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if category == "" {
		category = model.PackingMisc
	}
	if !category.Valid() {
		return model.PackingItem{}, fmt.Errorf("%w: unknown category %q", ErrInvalidItem, category)
	}

	item := model.PackingItem{ID: uuid.NewString(), Name: name, Category: category}
	_, err := l.items.Update(ctx, func(cur []model.PackingItem) ([]model.PackingItem, error) {
		next := make([]model.PackingItem, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, item), nil
	})
	return item, err
}

// Delete removes a non-essential item.
func (l *List) Delete(ctx context.Context, id string) error {
	_, err := l.items.Update(ctx, func(cur []model.PackingItem) ([]model.PackingItem, error) {
		for i, it := range cur {
			if it.ID != id {
				continue
			}
			if it.Essential {
				return nil, fmt.Errorf("%w: %s", ErrEssential, it.Name)
			}
			next := make([]model.PackingItem, 0, len(cur)-1)
			next = append(next, cur[:i]...)
			return append(next, cur[i+1:]...), nil
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, id)
	})
	return err
}

// Progress returns the overall counts.
func (l *List) Progress() Progress {
	packed, total := 0, 0
	for _, it := range l.items.Get() {
		total++
		if it.Packed {
			packed++
		}
	}
	return progressOf(packed, total)
}

// ByCategory returns per-category counts in display order, skipping empty
// categories.
func (l *List) ByCategory() []CategoryProgress {
	packed := make(map[model.PackingCategory]int)
	total := make(map[model.PackingCategory]int)
	for _, it := range l.items.Get() {
		total[it.Category]++
		if it.Packed {
			packed[it.Category]++
		}
	}

	out := make([]CategoryProgress, 0, len(model.PackingCategories))
	for _, c := range model.PackingCategories {
		if total[c] == 0 {
			continue
		}
		out = append(out, CategoryProgress{
			Category: c,
			Label:    CategoryLabels[c],
			Progress: progressOf(packed[c], total[c]),
		})
	}
	return out
}
