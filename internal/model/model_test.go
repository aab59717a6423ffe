package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmountJSONIsBareNumber(t *testing.T) {
	e := Expense{ID: "1", Description: "Pierogi", Amount: NewAmount(decimal.RequireFromString("42.50")), Currency: CurrencyPLN, Category: ExpenseFood}

	data, err := json.Marshal(e)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"amount":42.5`)

	var got Expense
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("42.5")))

	// Quoted amounts written by older builds still decode.
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"12.30"}`), &got))
	assert.Equal(t, "12.3", got.Amount.String())
}

func TestUrgencyRank(t *testing.T) {
	assert.Less(t, UrgencyLow.Rank(), UrgencyMedium.Rank())
	assert.Less(t, UrgencyMedium.Rank(), UrgencyHigh.Rank())
	assert.Equal(t, 0, Urgency("unknown").Rank())
}

func TestEnumsValid(t *testing.T) {
	assert.True(t, CurrencyGBP.Valid())
	assert.False(t, Currency("EUR").Valid())
	assert.True(t, ExpenseShopping.Valid())
	assert.False(t, ExpenseCategory("gifts").Valid())
	assert.True(t, PackingMisc.Valid())
	assert.False(t, PackingCategory("toys").Valid())
}

func TestFlightDeparture(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Warsaw")
	require.NoError(t, err)

	f := Flight{Number: "FR5523", Date: "2025-09-09", Time: "16:05"}
	dep, err := f.Departure(loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 9, 9, 16, 5, 0, 0, loc), dep)

	_, err = Flight{Date: "09/09/2025"}.Departure(loc)
	assert.Error(t, err)
}

type kindRecorder struct{ kinds []string }

func (k *kindRecorder) VisitText(TextBlock)             { k.kinds = append(k.kinds, "text") }
func (k *kindRecorder) VisitSuggestion(SuggestionBlock) { k.kinds = append(k.kinds, "suggestion") }
func (k *kindRecorder) VisitImage(ImageBlock)           { k.kinds = append(k.kinds, "image") }
func (k *kindRecorder) VisitOptions(OptionsBlock)       { k.kinds = append(k.kinds, "options") }

func TestBlockDispatch(t *testing.T) {
	blocks := []Block{TextBlock{}, SuggestionBlock{}, ImageBlock{}, OptionsBlock{}}
	rec := &kindRecorder{}
	for _, b := range blocks {
		b.Accept(rec)
	}
	assert.Equal(t, []string{"text", "suggestion", "image", "options"}, rec.kinds)
}
