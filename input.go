package holdings

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Entry is the parsed user input for a new holding, before its current price is known.
type Entry struct {
	Ticker   string
	BuyPrice decimal.Decimal
	Amount   int64
}

// ParseEntry validates raw form input: a non-empty ticker, a positive buy
// price with a bounded number of digits and a positive integer amount. The returned ticker is normalized.
// Errors are *ValidationError.
func ParseEntry(ticker, buyPrice, amount string) (Entry, error) {
	var e Entry
	e.Ticker = NormalizeTicker(ticker)
	if e.Ticker == "" {
		return e, &ValidationError{Field: "ticker", Reason: "is required"}
	}

	buyPrice = strings.TrimSpace(buyPrice)
	if buyPrice == "" {
		return e, &ValidationError{Field: "buy price", Reason: "is required"}
	}
	price, err := decimal.NewFromString(buyPrice)
	if err != nil {
		return e, &ValidationError{Field: "buy price", Input: buyPrice, Reason: "is not a number"}
	}
	if err := checkPrice("buy price", buyPrice, price); err != nil {
		return e, err
	}
	if !price.IsPositive() {
		return e, &ValidationError{Field: "buy price", Input: buyPrice, Reason: "must be positive"}
	}
	e.BuyPrice = price

	amount = strings.TrimSpace(amount)
	if amount == "" {
		return e, &ValidationError{Field: "amount", Reason: "is required"}
	}
	n, err := strconv.ParseInt(amount, 10, 64)
	if err != nil {
		return e, &ValidationError{Field: "amount", Input: amount, Reason: "is not an integer"}
	}
	if n <= 0 {
		return e, &ValidationError{Field: "amount", Input: amount, Reason: "must be positive"}
	}
	e.Amount = n
	return e, nil
}

// Holding completes the entry with the fetched current price.
func (e Entry) Holding(currentPrice decimal.Decimal) (Holding, error) {
	return NewHolding(e.Ticker, e.BuyPrice, currentPrice, e.Amount)
}
