package holdings

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

// d is a helper for test to create decimals from const
func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// h is a helper for test to create a holding from const
func h(ticker string, buy, current string, amount int64) Holding {
	return Holding{Ticker: ticker, BuyPrice: d(buy), CurrentPrice: d(current), Amount: amount}
}

// memStore is an in memory Store that records every save.
type memStore struct {
	mu      sync.Mutex
	content Portfolio
	loadErr error
	saveErr error
	saves   []Portfolio
}

func (s *memStore) Load(ctx context.Context) (Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.content.Clone(), nil
}

func (s *memStore) Save(ctx context.Context, p Portfolio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.content = p.Clone()
	s.saves = append(s.saves, p.Clone())
	return nil
}

func (s *memStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.saves)
}

// fakeMarket serves fixed prices and rate.
type fakeMarket struct {
	mu      sync.Mutex
	prices  map[string]decimal.Decimal
	rate    decimal.Decimal
	rateErr error
	calls   []string
}

func (m *fakeMarket) FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, ticker)
	p, ok := m.prices[ticker]
	if !ok {
		return decimal.Zero, ErrPriceUnavailable
	}
	return p, nil
}

func (m *fakeMarket) FetchExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	if m.rateErr != nil {
		return decimal.Zero, m.rateErr
	}
	return m.rate, nil
}

var errNetwork = errors.New("connection refused")
