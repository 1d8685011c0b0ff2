package holdings

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// DefaultSlot is the name of the persisted slot holding the portfolio.
const DefaultSlot = "myPortfolio"

// Store persists a portfolio snapshot in a single durable slot.
type Store interface {
	// Load returns the stored portfolio, an empty one if nothing was ever saved,
	// or an error wrapping ErrCorruptState if the snapshot cannot be decoded.
	Load(ctx context.Context) (Portfolio, error)
	// Save replaces the stored snapshot with p.
	Save(ctx context.Context, p Portfolio) error
}

// PriceSource provides the current spot price of a ticker, in base currency.
type PriceSource interface {
	FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error)
}

// RateSource provides the base to display currency conversion rate.
type RateSource interface {
	FetchExchangeRate(ctx context.Context) (decimal.Decimal, error)
}

// Tracker is the portfolio state engine. It owns the authoritative list of
// holdings and the exchange rate, and writes the list back to its Store after
// every change once Startup has loaded it.
//
// A Tracker is safe for concurrent use; mutations are applied one at a time.
type Tracker struct {
	store  Store
	prices PriceSource
	rates  RateSource
	log    zerolog.Logger

	base, display string

	startMu sync.Mutex // serializes Startup

	mu          sync.Mutex
	portfolio   Portfolio
	rate        decimal.Decimal
	initialized bool // set once the store has been loaded; guards every Save
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker's logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(t *Tracker) { t.log = l.With().Str("component", "tracker").Logger() }
}

// WithCurrencies sets the ISO codes of the base and display currencies (USD and JPY by default).
func WithCurrencies(base, display string) Option {
	return func(t *Tracker) { t.base, t.display = base, display }
}

// NewTracker returns an uninitialized tracker with an empty portfolio and a zero exchange rate.
func NewTracker(store Store, prices PriceSource, rates RateSource, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		prices:    prices,
		rates:     rates,
		log:       zerolog.Nop(),
		base:      "USD",
		display:   "JPY",
		portfolio: Portfolio{},
		rate:      decimal.Zero,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Startup loads the persisted portfolio and fetches the exchange rate, both at
// the same time. It always leaves the tracker initialized: a corrupt snapshot
// is replaced by an empty portfolio and a failed rate fetch keeps the previous
// rate. Those degradations are reported in the returned error, to be shown as
// warnings. Calling Startup again does nothing.
func (t *Tracker) Startup(ctx context.Context) error {
	t.startMu.Lock()
	defer t.startMu.Unlock()

	t.mu.Lock()
	done := t.initialized
	t.mu.Unlock()
	if done {
		return nil
	}

	var (
		loaded  Portfolio
		rate    decimal.Decimal
		loadErr error
		rateErr error
		g       errgroup.Group
	)
	g.Go(func() error {
		loaded, loadErr = t.store.Load(ctx)
		return nil
	})
	g.Go(func() error {
		rate, rateErr = t.rates.FetchExchangeRate(ctx)
		return nil
	})
	_ = g.Wait() // both goroutines report through loadErr and rateErr

	var warnings []error
	if loadErr != nil {
		t.log.Warn().Err(loadErr).Msg("cannot load persisted holdings, starting with an empty portfolio")
		if !errors.Is(loadErr, ErrCorruptState) {
			loadErr = fmt.Errorf("%w: %w", ErrCorruptState, loadErr)
		}
		warnings = append(warnings, loadErr)
		loaded = Portfolio{}
	}
	if rateErr == nil && !rate.IsPositive() {
		rateErr = fmt.Errorf("%w: non positive rate %v", ErrRateUnavailable, rate)
	}
	if rateErr == nil {
		if err := checkPrice("exchange rate", "", rate); err != nil {
			rateErr = fmt.Errorf("%w: %w", ErrRateUnavailable, err)
		}
	}
	if rateErr != nil {
		t.log.Warn().Err(rateErr).Msg("cannot fetch exchange rate")
		if !errors.Is(rateErr, ErrRateUnavailable) {
			rateErr = fmt.Errorf("%w: %w", ErrRateUnavailable, rateErr)
		}
		warnings = append(warnings, rateErr)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.portfolio = loaded.Clone()
	if rateErr == nil {
		t.rate = rate
	}
	t.initialized = true
	t.log.Info().Int("holdings", len(t.portfolio)).Str("rate", t.rate.String()).Msg("tracker started")
	return errors.Join(warnings...)
}

// AddHolding validates the form input, fetches the ticker's current price and
// appends the new holding. On a *ValidationError or a price failure (wrapping
// ErrPriceUnavailable) nothing changes and nothing is saved.
func (t *Tracker) AddHolding(ctx context.Context, ticker, buyPrice, amount string) error {
	entry, err := ParseEntry(ticker, buyPrice, amount)
	if err != nil {
		return err
	}

	price, err := t.prices.FetchPrice(ctx, entry.Ticker)
	if err != nil {
		t.log.Warn().Err(err).Str("ticker", entry.Ticker).Msg("cannot fetch price")
		if errors.Is(err, ErrPriceUnavailable) {
			return fmt.Errorf("%s: %w", entry.Ticker, err)
		}
		return fmt.Errorf("%w for %s: %w", ErrPriceUnavailable, entry.Ticker, err)
	}
	h, err := entry.Holding(price)
	if err != nil {
		return fmt.Errorf("%w for %s: %w", ErrPriceUnavailable, entry.Ticker, err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.portfolio = append(t.portfolio, h)
	t.log.Info().Str("ticker", h.Ticker).Str("price", h.CurrentPrice.String()).Int64("amount", h.Amount).Msg("holding added")
	return t.persist(ctx)
}

// DeleteHolding removes the holding at index, shifting the following ones down.
// An out of range index returns an error wrapping ErrIndex and changes nothing.
func (t *Tracker) DeleteHolding(ctx context.Context, index int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if index < 0 || index >= len(t.portfolio) {
		return fmt.Errorf("%w: cannot delete holding %d of %d", ErrIndex, index, len(t.portfolio))
	}
	removed := t.portfolio[index]
	t.portfolio = append(t.portfolio[:index:index], t.portfolio[index+1:]...)
	t.log.Info().Str("ticker", removed.Ticker).Int("index", index).Msg("holding deleted")
	return t.persist(ctx)
}

// ClearAll removes every holding.
func (t *Tracker) ClearAll(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.portfolio = Portfolio{}
	t.log.Info().Msg("holdings cleared")
	return t.persist(ctx)
}

// persist saves the current portfolio, unless the store has not been loaded
// yet. It must be called with t.mu held.
func (t *Tracker) persist(ctx context.Context) error {
	if !t.initialized {
		t.log.Debug().Msg("not started, skipping save")
		return nil
	}
	if err := t.store.Save(ctx, t.portfolio.Clone()); err != nil {
		t.log.Error().Err(err).Msg("cannot save holdings")
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

// Initialized reports whether Startup has completed.
func (t *Tracker) Initialized() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.initialized
}

// Portfolio returns a copy of the current holdings.
func (t *Tracker) Portfolio() Portfolio {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.portfolio.Clone()
}

// Rate returns the current exchange rate, zero until fetched.
func (t *Tracker) Rate() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rate
}

// Snapshot returns a consistent read-only view of the holdings and their profits.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return NewSnapshot(t.portfolio.Clone(), t.rate, t.base, t.display, t.initialized)
}
