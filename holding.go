package holdings

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is one equity position.
type Holding struct {
	Ticker       string          // normalized uppercase symbol
	BuyPrice     decimal.Decimal // per unit, at acquisition, base currency
	CurrentPrice decimal.Decimal // per unit, last fetched, base currency
	Amount       int64           // number of units held
}

// NewHolding builds a validated Holding, normalizing the ticker.
func NewHolding(ticker string, buyPrice, currentPrice decimal.Decimal, amount int64) (Holding, error) {
	h := Holding{
		Ticker:       NormalizeTicker(ticker),
		BuyPrice:     buyPrice,
		CurrentPrice: currentPrice,
		Amount:       amount,
	}
	return h, h.Validate()
}

// NormalizeTicker trims and uppercases a ticker symbol.
func NormalizeTicker(ticker string) string { return strings.ToUpper(strings.TrimSpace(ticker)) }

// Prices are bounded so that decimal arithmetic and encoding stay cheap.
const (
	maxPriceFractionDigits = 12
	maxPriceIntegerDigits  = 15
)

// checkPrice returns a *ValidationError when v has more fraction or integer
// digits than a price can have.
func checkPrice(field, input string, v decimal.Decimal) error {
	exp := int(v.Exponent())
	switch {
	case exp < -maxPriceFractionDigits:
		return &ValidationError{Field: field, Input: input, Reason: fmt.Sprintf("has more than %d decimal places", maxPriceFractionDigits)}
	case v.NumDigits()+exp > maxPriceIntegerDigits:
		return &ValidationError{Field: field, Input: input, Reason: fmt.Sprintf("has more than %d integer digits", maxPriceIntegerDigits)}
	}
	return nil
}

// Validate checks that all the fields of h are populated and in range.
func (h Holding) Validate() error {
	if err := checkPrice("buy price", "", h.BuyPrice); err != nil {
		return err
	}
	if err := checkPrice("current price", "", h.CurrentPrice); err != nil {
		return err
	}
	switch {
	case h.Ticker == "":
		return &ValidationError{Field: "ticker", Reason: "is required"}
	case h.Ticker != NormalizeTicker(h.Ticker):
		return &ValidationError{Field: "ticker", Input: h.Ticker, Reason: "must be uppercase"}
	case !h.BuyPrice.IsPositive():
		return &ValidationError{Field: "buy price", Input: h.BuyPrice.String(), Reason: "must be positive"}
	case h.CurrentPrice.IsNegative():
		return &ValidationError{Field: "current price", Input: h.CurrentPrice.String(), Reason: "must not be negative"}
	case h.Amount <= 0:
		return &ValidationError{Field: "amount", Input: fmt.Sprint(h.Amount), Reason: "must be positive"}
	}
	return nil
}

// Profit returns the unrealized profit (CurrentPrice - BuyPrice) * Amount, in base currency.
func (h Holding) Profit() decimal.Decimal {
	return h.CurrentPrice.Sub(h.BuyPrice).Mul(decimal.NewFromInt(h.Amount))
}

// SellWorthy is true when the holding's profit is strictly positive.
func (h Holding) SellWorthy() bool { return h.Profit().IsPositive() }

// Equal reports whether both holdings have the same ticker, prices and amount.
func (h Holding) Equal(o Holding) bool {
	return h.Ticker == o.Ticker &&
		h.BuyPrice.Equal(o.BuyPrice) &&
		h.CurrentPrice.Equal(o.CurrentPrice) &&
		h.Amount == o.Amount
}

// MarshalJSON writes the holding as {"ticker","currentPrice","buyPrice","amount"}
// with unquoted numbers.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("ticker", h.Ticker)
	w.Number("currentPrice", h.CurrentPrice)
	w.Number("buyPrice", h.BuyPrice)
	w.Append("amount", h.Amount)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a holding record, accepting quoted or unquoted numbers.
func (h *Holding) UnmarshalJSON(data []byte) error {
	var j struct {
		Ticker       string           `json:"ticker"`
		CurrentPrice *decimal.Decimal `json:"currentPrice"`
		BuyPrice     *decimal.Decimal `json:"buyPrice"`
		Amount       *json.Number     `json:"amount"`
	}
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if j.CurrentPrice == nil || j.BuyPrice == nil || j.Amount == nil {
		return fmt.Errorf("holding %q: missing field", j.Ticker)
	}
	amount, err := j.Amount.Int64()
	if err != nil {
		return fmt.Errorf("holding %q: amount %q is not an integer", j.Ticker, j.Amount.String())
	}
	*h = Holding{
		Ticker:       j.Ticker,
		CurrentPrice: *j.CurrentPrice,
		BuyPrice:     *j.BuyPrice,
		Amount:       amount,
	}
	return nil
}
