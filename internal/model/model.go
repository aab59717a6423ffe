package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Day is one dated entry of the static trip schedule. Days are defined once
// in the itinerary catalogue and never mutated at runtime.
type Day struct {
	ID       string
	Title    string
	Subtitle string

	// Date is the human-readable label, e.g. "Tuesday, September 9th".
	// It carries no year; the year is supplied by configuration.
	Date string

	Blocks    []Block
	Locations []Location
}

// Location is a named point handed to the map collaborator.
type Location struct {
	Lat  float64 `json:"lat" yaml:"lat"`
	Lng  float64 `json:"lng" yaml:"lng"`
	Name string  `json:"name" yaml:"name"`
}

// Currency is one of the two currencies the ledger understands.
type Currency string

const (
	CurrencyGBP Currency = "GBP"
	CurrencyPLN Currency = "PLN"
)

func (c Currency) Valid() bool {
	return c == CurrencyGBP || c == CurrencyPLN
}

// ExpenseCategory classifies ledger entries.
type ExpenseCategory string

const (
	ExpenseFood          ExpenseCategory = "food"
	ExpenseTransport     ExpenseCategory = "transport"
	ExpenseAccommodation ExpenseCategory = "accommodation"
	ExpenseAttractions   ExpenseCategory = "attractions"
	ExpenseShopping      ExpenseCategory = "shopping"
	ExpenseOther         ExpenseCategory = "other"
)

// ExpenseCategories lists the categories in display order.
var ExpenseCategories = []ExpenseCategory{
	ExpenseFood, ExpenseTransport, ExpenseAccommodation,
	ExpenseAttractions, ExpenseShopping, ExpenseOther,
}

func (c ExpenseCategory) Valid() bool {
	for _, k := range ExpenseCategories {
		if k == c {
			return true
		}
	}
	return false
}

// Amount is a decimal that serialises as a bare JSON number.
type Amount struct {
	decimal.Decimal
}

func NewAmount(d decimal.Decimal) Amount { return Amount{Decimal: d} }

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// Expense is one ledger record.
type Expense struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      Amount          `json:"amount"`
	Currency    Currency        `json:"currency"`
	Category    ExpenseCategory `json:"category"`
	Date        string          `json:"date"` // YYYY-MM-DD
}

// PackingCategory groups checklist items.
type PackingCategory string

const (
	PackingDocuments   PackingCategory = "documents"
	PackingClothing    PackingCategory = "clothing"
	PackingElectronics PackingCategory = "electronics"
	PackingHealth      PackingCategory = "health"
	PackingMoney       PackingCategory = "money"
	PackingMisc        PackingCategory = "misc"
)

// PackingCategories lists the categories in display order.
var PackingCategories = []PackingCategory{
	PackingDocuments, PackingClothing, PackingElectronics,
	PackingHealth, PackingMoney, PackingMisc,
}

func (c PackingCategory) Valid() bool {
	for _, k := range PackingCategories {
		if k == c {
			return true
		}
	}
	return false
}

// PackingItem is one checklist entry. Essential is fixed by the seed
// catalogue; only Packed changes afterwards.
type PackingItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Category  PackingCategory `json:"category"`
	Essential bool            `json:"essential"`
	Packed    bool            `json:"packed"`
}

// AlertType is the subject area of an alert.
type AlertType string

const (
	AlertFlight    AlertType = "flight"
	AlertWeather   AlertType = "weather"
	AlertTransport AlertType = "transport"
	AlertBooking   AlertType = "booking"
)

// Urgency is ordered: low < medium < high.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Rank returns a comparable position for u; unknown values rank lowest.
func (u Urgency) Rank() int {
	switch u {
	case UrgencyHigh:
		return 3
	case UrgencyMedium:
		return 2
	case UrgencyLow:
		return 1
	default:
		return 0
	}
}

// Alert is produced by the rule pass and afterwards only has Dismissed
// flipped.
type Alert struct {
	ID        string    `json:"id"`
	Type      AlertType `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Urgency   Urgency   `json:"urgency"`
	Date      time.Time `json:"date"`
	Dismissed bool      `json:"dismissed"`
}

// Flight is a scheduled flight of the trip.
type Flight struct {
	Number string `yaml:"number" json:"number"`
	Date   string `yaml:"date" json:"date"` // YYYY-MM-DD
	Time   string `yaml:"time" json:"time"` // HH:MM, local to the departure airport
	From   string `yaml:"from" json:"from"`
	To     string `yaml:"to" json:"to"`
}

// Departure returns the scheduled departure in loc.
func (f Flight) Departure(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	clock := f.Time
	if clock == "" {
		clock = "00:00"
	}
	return time.ParseInLocation("2006-01-02 15:04", f.Date+" "+clock, loc)
}
