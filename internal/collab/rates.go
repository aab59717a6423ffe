package collab

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"
)

const ratesTTL = time.Hour

// Direction selects which way Convert goes.
type Direction string

const (
	HomeToLocal Direction = "gbp-pln"
	LocalToHome Direction = "pln-gbp"
)

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// RatesOptions configure NewRatesClient.
type RatesOptions struct {
	BaseURL string
	Retries int
	Client  HTTPClient
}

// RatesClient reads the GBP to PLN rate from exchangerate-api.
type RatesClient struct {
	client  HTTPClient
	baseURL string
	retries int
	cache   *expirable.LRU[string, decimal.Decimal]
}

func NewRatesClient(opts RatesOptions) *RatesClient {
	r := &RatesClient{
		client:  opts.Client,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		retries: opts.Retries,
		cache:   expirable.NewLRU[string, decimal.Decimal](1, nil, ratesTTL),
	}
	if r.client == nil {
		r.client = defaultHTTPClient()
	}
	if r.baseURL == "" {
		r.baseURL = "https://api.exchangerate-api.com"
	}
	return r
}

// Rate returns how many PLN one GBP buys.
func (r *RatesClient) Rate(ctx context.Context) (decimal.Decimal, error) {
	if v, ok := r.cache.Get("PLN"); ok {
		return v, nil
	}
	var raw ratesResponse
	if err := doJSON(ctx, r.client, "rates", r.retries, getRequest(r.baseURL+"/v4/latest/GBP"), &raw); err != nil {
		return decimal.Zero, err
	}
	pln, ok := raw.Rates["PLN"]
	if !ok || pln <= 0 {
		return decimal.Zero, unavailable("rates", errors.New("no PLN rate in response"))
	}
	rate := decimal.NewFromFloat(pln)
	r.cache.Add("PLN", rate)
	return rate, nil
}

func (r *RatesClient) Purge() { r.cache.Purge() }

// Convert applies rate to amount in the given direction, rounded to two
// decimal places.
func Convert(amount, rate decimal.Decimal, dir Direction) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, errors.New("rate must be positive")
	}
	switch dir {
	case HomeToLocal:
		return amount.Mul(rate).Round(2), nil
	case LocalToHome:
		return amount.Div(rate).Round(2), nil
	default:
		return decimal.Zero, errors.New("unknown conversion direction " + string(dir))
	}
}
