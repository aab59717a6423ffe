package expenses

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tripboard/internal/dates"
	"tripboard/internal/model"
	"tripboard/internal/store"
)

func testEngine(t *testing.T) *dates.Engine {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)
	// 23:30 UTC on the 10th is already the 11th in Warsaw.
	return dates.NewEngine(loc, 2025, dates.FixedClock(time.Date(2025, 9, 10, 23, 30, 0, 0, time.UTC)))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSummaryMixedCurrencies(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "poland-trip", testEngine(t), DefaultSettings())

	_, err := l.Add(ctx, NewExpense{Description: "Dinner", Amount: dec("50"), Currency: model.CurrencyGBP, Category: model.ExpenseFood})
	require.NoError(t, err)
	_, err = l.Add(ctx, NewExpense{Description: "Tram pass", Amount: dec("100"), Currency: model.CurrencyPLN, Category: model.ExpenseTransport})
	require.NoError(t, err)

	s := l.Summary()
	assert.True(t, s.Budget.Equal(dec("1000")), s.Budget.String())
	assert.True(t, s.Spent.Equal(dec("70")), s.Spent.String())
	assert.True(t, s.Remaining.Equal(dec("930")), s.Remaining.String())
	assert.True(t, s.SpentPercent.Equal(dec("7")), s.SpentPercent.String())
	assert.Equal(t, LevelOK, s.Level)
	assert.Equal(t, "930.00", s.Remaining.StringFixed(2))
	assert.Equal(t, 2, s.Count)

	byCat := l.ByCategory()
	assert.True(t, byCat[model.ExpenseTransport].Equal(dec("20")))
}

func TestAddStampsIDAndTripDate(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "trip", testEngine(t), DefaultSettings())

	e, err := l.Add(ctx, NewExpense{Description: "  Pierogi  ", Amount: dec("32.5"), Currency: model.CurrencyPLN, Category: model.ExpenseFood})
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Pierogi", e.Description)
	assert.Equal(t, "2025-09-11", e.Date)

	e2, err := l.Add(ctx, NewExpense{Description: "Coffee", Amount: dec("3")})
	require.NoError(t, err)
	assert.NotEqual(t, e.ID, e2.ID)
	assert.Equal(t, model.CurrencyGBP, e2.Currency)
	assert.Equal(t, model.ExpenseFood, e2.Category)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "trip", testEngine(t), DefaultSettings())

	cases := map[string]NewExpense{
		"blank description": {Description: "   ", Amount: dec("1")},
		"zero amount":       {Description: "x", Amount: decimal.Zero},
		"negative amount":   {Description: "x", Amount: dec("-4")},
		"currency":          {Description: "x", Amount: dec("1"), Currency: "EUR"},
		"category":          {Description: "x", Amount: dec("1"), Category: "gifts"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := l.Add(ctx, in)
			assert.ErrorIs(t, err, ErrInvalidExpense)
		})
	}
	assert.Empty(t, l.Expenses())
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "trip", testEngine(t), DefaultSettings())
	a, err := l.Add(ctx, NewExpense{Description: "a", Amount: dec("1")})
	require.NoError(t, err)
	b, err := l.Add(ctx, NewExpense{Description: "b", Amount: dec("2")})
	require.NoError(t, err)

	require.NoError(t, l.Delete(ctx, a.ID))
	got := l.Expenses()
	require.Len(t, got, 1)
	assert.Equal(t, b.ID, got[0].ID)

	assert.ErrorIs(t, l.Delete(ctx, "missing"), ErrUnknownExpense)
}

func TestBudgetPersistsAndLevels(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemoryStore()
	l := Open(ctx, p, "trip", testEngine(t), DefaultSettings())

	_, err := l.SetBudget(ctx, dec("100"))
	require.NoError(t, err)
	_, err = l.Add(ctx, NewExpense{Description: "Museum", Amount: dec("75")})
	require.NoError(t, err)
	assert.Equal(t, LevelWarning, l.Summary().Level)

	_, err = l.Add(ctx, NewExpense{Description: "Vodka tasting", Amount: dec("50")})
	require.NoError(t, err)
	s := l.Summary()
	assert.Equal(t, LevelDanger, s.Level)
	assert.True(t, s.SpentPercent.Equal(dec("100")))
	assert.True(t, s.Remaining.Equal(dec("-25")))

	raw, err := p.Load(ctx, "trip-budget")
	require.NoError(t, err)
	assert.Equal(t, "100", string(raw))

	reopened := Open(ctx, p, "trip", testEngine(t), DefaultSettings())
	assert.True(t, reopened.Budget().Equal(dec("100")))
	assert.Len(t, reopened.Expenses(), 2)
}

func TestSetBudgetNegativeStoresZero(t *testing.T) {
	ctx := context.Background()
	l := Open(ctx, store.NewMemoryStore(), "trip", testEngine(t), DefaultSettings())

	got, err := l.SetBudget(ctx, dec("-10"))
	require.NoError(t, err)
	assert.True(t, got.IsZero())
	assert.True(t, l.Summary().SpentPercent.IsZero())

	_, err = l.Add(ctx, NewExpense{Description: "x", Amount: dec("1")})
	require.NoError(t, err)
	assert.Equal(t, LevelDanger, l.Summary().Level)
}

func TestLegacyStoredAmounts(t *testing.T) {
	ctx := context.Background()
	p := store.NewMemoryStore()
	require.NoError(t, p.Save(ctx, "trip-expenses", []byte(`[{"id":"1725883200000","description":"Zapiekanka","amount":15,"currency":"PLN","category":"food","date":"2025-09-09"}]`)))
	require.NoError(t, p.Save(ctx, "trip-budget", []byte(`800`)))

	l := Open(ctx, p, "trip", testEngine(t), DefaultSettings())
	s := l.Summary()
	assert.True(t, s.Budget.Equal(dec("800")))
	assert.True(t, s.Spent.Equal(dec("3")))
}
