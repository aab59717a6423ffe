// Package alerts holds the dismissible travel alerts. Alerts are generated
// once, the first time the widget opens without stored state; afterwards
// only their dismissed flag changes.
package alerts

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tripboard/internal/dates"
	appLog "tripboard/internal/log"
	"tripboard/internal/model"
	"tripboard/internal/store"
)

// ErrUnknownAlert is returned by Dismiss for an id that is not stored.
var ErrUnknownAlert = errors.New("unknown alert")

// Notifier receives freshly generated high-urgency alerts.
type Notifier interface {
	Notify(ctx context.Context, alerts []model.Alert) error
}

// Board owns the "<ns>-alerts" key.
type Board struct {
	alerts *store.Cell[[]model.Alert]
	fresh  bool
}

// Options configure Open. Zero values are usable.
type Options struct {
	Clock    dates.Clock
	Notifier Notifier
}

// Open loads stored alerts or, when there are none, evaluates rules once,
// persists the result and passes its high-urgency alerts to the notifier.
func Open(ctx context.Context, p store.Port, namespace string, rules Rules, opts Options) *Board {
	clock := opts.Clock
	if clock == nil {
		clock = dates.SystemClock{}
	}

	var generated []model.Alert
	cell := store.Open(ctx, p, store.Key(namespace, "alerts"), func() []model.Alert {
		generated = rules.Evaluate(clock.Now())
		if generated == nil {
			generated = []model.Alert{}
		}
		return generated
	})
	b := &Board{alerts: cell, fresh: cell.Origin() == store.FromSeed}
	if !b.fresh {
		return b
	}

	appLog.Info("travel alerts generated", "count", len(generated), "key", cell.Key())
	if _, err := cell.Update(ctx, func(cur []model.Alert) ([]model.Alert, error) { return cur, nil }); err != nil {
		appLog.Warn("generated alerts not persisted; they will be regenerated next open", "key", cell.Key())
	}
	if opts.Notifier != nil {
		if high := highUrgency(generated); len(high) > 0 {
			if err := opts.Notifier.Notify(ctx, high); err != nil {
				appLog.Error("alert notification failed", err, "count", len(high))
			}
		}
	}
	return b
}

func highUrgency(in []model.Alert) []model.Alert {
	var out []model.Alert
	for _, a := range in {
		if a.Urgency == model.UrgencyHigh && !a.Dismissed {
			out = append(out, a)
		}
	}
	return out
}

// Fresh reports whether this Open generated the alerts.
func (b *Board) Fresh() bool { return b.fresh }

// All returns every stored alert, dismissed ones included, in stored order.
func (b *Board) All() []model.Alert {
	cur := b.alerts.Get()
	out := make([]model.Alert, len(cur))
	copy(out, cur)
	return out
}

// Active returns undismissed alerts, most urgent first, then by id.
func (b *Board) Active() []model.Alert {
	var out []model.Alert
	for _, a := range b.alerts.Get() {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := out[i].Urgency.Rank(), out[j].Urgency.Rank()
		if ri != rj {
			return ri > rj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Dismiss flips the dismissed flag of id. Dismissing twice is a no-op.
func (b *Board) Dismiss(ctx context.Context, id string) error {
	_, err := b.alerts.Update(ctx, func(cur []model.Alert) ([]model.Alert, error) {
		next := make([]model.Alert, len(cur))
		copy(next, cur)
		for i := range next {
			if next[i].ID == id {
				next[i].Dismissed = true
				return next, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlert, id)
	})
	return err
}
