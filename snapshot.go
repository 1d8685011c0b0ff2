package holdings

import "github.com/shopspring/decimal"

// Line is the valued view of a single holding.
type Line struct {
	Holding
	Profit        Money // base currency
	ProfitDisplay Money // display currency
}

// Snapshot is a read-only projection of the tracker state, with every derived
// value computed at the time it was taken. Values are exact; rounding is left
// to presentation.
type Snapshot struct {
	Holdings           Portfolio
	Lines              []Line
	Rate               decimal.Decimal // base to display, zero when unknown
	BaseCurrency       string
	DisplayCurrency    string
	TotalProfit        Money
	TotalProfitDisplay Money
	Initialized        bool
}

// NewSnapshot values p using rate.
func NewSnapshot(p Portfolio, rate decimal.Decimal, base, display string, initialized bool) Snapshot {
	s := Snapshot{
		Holdings:        p,
		Lines:           make([]Line, 0, len(p)),
		Rate:            rate,
		BaseCurrency:    base,
		DisplayCurrency: display,
		Initialized:     initialized,
	}
	for _, h := range p {
		profit := M(h.Profit(), base)
		s.Lines = append(s.Lines, Line{
			Holding:       h,
			Profit:        profit,
			ProfitDisplay: profit.Convert(rate, display),
		})
	}
	s.TotalProfit = M(p.TotalProfit(), base)
	s.TotalProfitDisplay = s.TotalProfit.Convert(rate, display)
	return s
}

// InProfit is true when the aggregate profit is strictly positive.
func (s Snapshot) InProfit() bool { return s.TotalProfit.IsPositive() }

// HasRate is false until an exchange rate was successfully fetched.
func (s Snapshot) HasRate() bool { return s.Rate.IsPositive() }
