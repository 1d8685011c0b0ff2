package holdings

import (
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Portfolio is the ordered list of holdings. Insertion order is display order
// and a holding is identified by its position, not its ticker.
type Portfolio []Holding

// Clone returns a copy of p that shares nothing with it.
func (p Portfolio) Clone() Portfolio {
	if p == nil {
		return Portfolio{}
	}
	return slices.Clone(p)
}

// Equal reports whether both portfolios hold equal holdings in the same order.
func (p Portfolio) Equal(q Portfolio) bool {
	return slices.EqualFunc(p, q, Holding.Equal)
}

// TotalProfit returns the sum of the holdings' profits in base currency.
func (p Portfolio) TotalProfit() decimal.Decimal {
	total := decimal.Zero
	for _, h := range p {
		total = total.Add(h.Profit())
	}
	return total
}

// Validate checks every holding and reports the first invalid one.
func (p Portfolio) Validate() error {
	for i, h := range p {
		if err := h.Validate(); err != nil {
			return &IndexedError{Index: i, Err: err}
		}
	}
	return nil
}

// IndexedError attaches a holding position to an error.
type IndexedError struct {
	Index int
	Err   error
}

func (e *IndexedError) Error() string { return fmt.Sprintf("holding #%d: %v", e.Index+1, e.Err) }
func (e *IndexedError) Unwrap() error { return e.Err }
