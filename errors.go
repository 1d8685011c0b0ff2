package holdings

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is returned when user input cannot build a valid Holding.
	ErrValidation = errors.New("invalid input")
	// ErrFetch is returned when a market data endpoint cannot be reached or
	// answers with an unusable payload.
	ErrFetch = errors.New("market data unavailable")
	// ErrPriceUnavailable is returned when no spot price can be obtained for a ticker.
	ErrPriceUnavailable = fmt.Errorf("price unavailable: %w", ErrFetch)
	// ErrRateUnavailable is returned when no exchange rate can be obtained.
	ErrRateUnavailable = fmt.Errorf("exchange rate unavailable: %w", ErrFetch)
	// ErrIndex is returned when a holding position is out of range.
	ErrIndex = errors.New("index out of range")
	// ErrCorruptState is returned when a persisted snapshot cannot be decoded.
	ErrCorruptState = errors.New("corrupt persisted state")
	// ErrPersist is returned when the snapshot cannot be written.
	ErrPersist = errors.New("cannot persist holdings")
)

// ValidationError describes why a single input field was rejected.
type ValidationError struct {
	Field  string // "ticker", "buy price" or "amount"
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Input, e.Reason)
}

// Unwrap makes every ValidationError match ErrValidation.
func (e *ValidationError) Unwrap() error { return ErrValidation }
