package holdings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEntry(t *testing.T) {
	testCases := []struct {
		name      string
		ticker    string
		buyPrice  string
		amount    string
		wantField string // empty when valid
	}{
		{"valid", "aapl", "150", "10", ""},
		{"valid with spaces", " msft ", " 410.25 ", " 3 ", ""},
		{"empty ticker", "", "10", "150", "ticker"},
		{"blank ticker", "   ", "10", "150", "ticker"},
		{"missing buy price", "AAPL", "", "10", "buy price"},
		{"non numeric buy price", "AAPL", "abc", "10", "buy price"},
		{"zero buy price", "AAPL", "0", "10", "buy price"},
		{"negative buy price", "AAPL", "-5", "10", "buy price"},
		{"twelve decimal places", "AAPL", "150.000000000001", "10", ""},
		{"too many decimal places", "AAPL", "150.0000000000001", "10", "buy price"},
		{"tiny exponent", "AAPL", "1e-20000000", "10", "buy price"},
		{"too many integer digits", "AAPL", "1e20", "10", "buy price"},
		{"missing amount", "AAPL", "150", "", "amount"},
		{"fractional amount", "AAPL", "150", "1.5", "amount"},
		{"zero amount", "AAPL", "150", "0", "amount"},
		{"negative amount", "AAPL", "150", "-3", "amount"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := ParseEntry(tc.ticker, tc.buyPrice, tc.amount)
			if tc.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, NormalizeTicker(tc.ticker), e.Ticker)
				assert.Positive(t, e.Amount)
				assert.True(t, e.BuyPrice.IsPositive())
				return
			}
			require.ErrorIs(t, err, ErrValidation)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.wantField, ve.Field)
		})
	}
}

func TestEntry_Holding(t *testing.T) {
	e, err := ParseEntry("aapl", "150", "10")
	require.NoError(t, err)

	got, err := e.Holding(d("180"))
	require.NoError(t, err)
	assert.True(t, got.Equal(h("AAPL", "150", "180", 10)))

	_, err = e.Holding(d("-1"))
	assert.ErrorIs(t, err, ErrValidation)
}
