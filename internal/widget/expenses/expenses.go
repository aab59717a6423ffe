// Package expenses is the trip's expense ledger: a list of spendings in two
// currencies measured against one home-currency budget.
package expenses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tripboard/internal/dates"
	"tripboard/internal/model"
	"tripboard/internal/store"
)

// ErrInvalidExpense is matched by every rejected Add.
var ErrInvalidExpense = errors.New("invalid expense")

// ErrUnknownExpense is returned by Delete for an id that is not in the ledger.
var ErrUnknownExpense = errors.New("unknown expense")

// Level buckets how much of the budget is used.
type Level string

const (
	LevelOK      Level = "ok"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(70)
	dangerThreshold  = decimal.NewFromInt(90)
)

// Settings are the ledger's fixed parameters.
type Settings struct {
	// LocalPerHome converts PLN amounts into GBP (amount / LocalPerHome).
	LocalPerHome decimal.Decimal
	// DefaultBudget is used until a budget has been stored.
	DefaultBudget decimal.Decimal
}

func DefaultSettings() Settings {
	return Settings{
		LocalPerHome:  decimal.NewFromInt(5),
		DefaultBudget: decimal.NewFromInt(1000),
	}
}

// NewExpense is the user input for Add.
type NewExpense struct {
	Description string                `json:"description"`
	Amount      decimal.Decimal       `json:"amount"`
	Currency    model.Currency        `json:"currency"`
	Category    model.ExpenseCategory `json:"category"`
}

// Summary is the budget overview.
type Summary struct {
	Budget       decimal.Decimal `json:"budget"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
	SpentPercent decimal.Decimal `json:"spent_percent"`
	Level        Level           `json:"level"`
	Count        int             `json:"count"`
}

// Ledger owns the "<ns>-expenses" and "<ns>-budget" keys.
type Ledger struct {
	settings Settings
	engine   *dates.Engine
	expenses *store.Cell[[]model.Expense]
	budget   *store.Cell[model.Amount]
}

// Open loads the ledger from p. A nil engine dates expenses in the host zone.
func Open(ctx context.Context, p store.Port, namespace string, engine *dates.Engine, s Settings) *Ledger {
	if engine == nil {
		engine = dates.NewEngine(nil, 0, nil)
	}
	if !s.LocalPerHome.IsPositive() {
		s.LocalPerHome = DefaultSettings().LocalPerHome
	}
	if s.DefaultBudget.IsNegative() {
		s.DefaultBudget = decimal.Zero
	}
	def := s.DefaultBudget
	return &Ledger{
		settings: s,
		engine:   engine,
		expenses: store.Open(ctx, p, store.Key(namespace, "expenses"), func() []model.Expense { return []model.Expense{} }),
		budget:   store.Open(ctx, p, store.Key(namespace, "budget"), func() model.Amount { return model.NewAmount(def) }),
	}
}

// Expenses returns the ledger in insertion order.
func (l *Ledger) Expenses() []model.Expense {
	cur := l.expenses.Get()
	out := make([]model.Expense, len(cur))
	copy(out, cur)
	return out
}

func (l *Ledger) Budget() decimal.Decimal {
	return l.budget.Get().Decimal
}

// Add validates in and appends it, dated today in the trip zone.
func (l *Ledger) Add(ctx context.Context, in NewExpense) (model.Expense, error) {
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return model.Expense{}, fmt.Errorf("%w: description is required", ErrInvalidExpense)
	}
	if !in.Amount.IsPositive() {
		return model.Expense{}, fmt.Errorf("%w: amount must be greater than zero", ErrInvalidExpense)
	}
	if in.Currency == "" {
		in.Currency = model.CurrencyGBP
	}
	if !in.Currency.Valid() {
		return model.Expense{}, fmt.Errorf("%w: unknown currency %q", ErrInvalidExpense, in.Currency)
	}
	if in.Category == "" {
		in.Category = model.ExpenseFood
	}
	if !in.Category.Valid() {
		return model.Expense{}, fmt.Errorf("%w: unknown category %q", ErrInvalidExpense, in.Category)
	}

	e := model.Expense{
		ID:          uuid.NewString(),
		Description: desc,
		Amount:      model.NewAmount(in.Amount),
		Currency:    in.Currency,
		Category:    in.Category,
		Date:        l.engine.CurrentLocalDate().String(),
	}
	_, err := l.expenses.Update(ctx, func(cur []model.Expense) ([]model.Expense, error) {
		next := make([]model.Expense, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, e), nil
	})
	return e, err
}

// Delete removes the expense with the given id.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	_, err := l.expenses.Update(ctx, func(cur []model.Expense) ([]model.Expense, error) {
		next := make([]model.Expense, 0, len(cur))
		found := false
		for _, e := range cur {
			if e.ID == id {
				found = true
				continue
			}
			next = append(next, e)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", ErrUnknownExpense, id)
		}
		return next, nil
	})
	return err
}

// SetBudget stores a new budget; negative input is stored as zero.
func (l *Ledger) SetBudget(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		amount = decimal.Zero
	}
	v, err := l.budget.Update(ctx, func(model.Amount) (model.Amount, error) {
		return model.NewAmount(amount), nil
	})
	return v.Decimal, err
}

// InHome converts e into the home currency.
func (l *Ledger) InHome(e model.Expense) decimal.Decimal {
	if e.Currency == model.CurrencyPLN {
		return e.Amount.Div(l.settings.LocalPerHome)
	}
	return e.Amount.Decimal
}

// Summary totals the ledger against the budget.
func (l *Ledger) Summary() Summary {
	expenses := l.expenses.Get()
	budget := l.budget.Get().Decimal

	spent := decimal.Zero
	for _, e := range expenses {
		spent = spent.Add(l.InHome(e))
	}

	var pct decimal.Decimal
	switch {
	case budget.IsPositive():
		pct = decimal.Min(spent.Div(budget).Mul(hundred), hundred)
	case spent.IsPositive():
		pct = hundred
	default:
		pct = decimal.Zero
	}

	level := LevelOK
	switch {
	case pct.GreaterThan(dangerThreshold):
		level = LevelDanger
	case pct.GreaterThan(warningThreshold):
		level = LevelWarning
	}

	return Summary{
		Budget:       budget.Round(2),
		Spent:        spent.Round(2),
		Remaining:    budget.Sub(spent).Round(2),
		SpentPercent: pct.Round(2),
		Level:        level,
		Count:        len(expenses),
	}
}

// ByCategory totals spending per category in the home currency. Categories
// without spending are omitted.
func (l *Ledger) ByCategory() map[model.ExpenseCategory]decimal.Decimal {
	out := make(map[model.ExpenseCategory]decimal.Decimal)
	for _, e := range l.expenses.Get() {
		out[e.Category] = out[e.Category].Add(l.InHome(e))
	}
	return out
}
