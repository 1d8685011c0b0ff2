package holdings

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolding_Profit(t *testing.T) {
	testCases := []struct {
		name       string
		holding    Holding
		wantProfit string
		sellWorthy bool
	}{
		{"gain", h("AAPL", "150", "180", 10), "300", true},
		{"loss", h("MSFT", "400", "390.5", 3), "-28.5", false},
		{"flat is not sell-worthy", h("GOOG", "100", "100", 7), "0", false},
		{"zero current price", h("DEAD", "12.5", "0", 4), "-50", false},
		{"fractional prices", h("NVDA", "0.1", "0.3", 3), "0.6", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, d(tc.wantProfit).Equal(tc.holding.Profit()), "Profit() = %v, want %v", tc.holding.Profit(), tc.wantProfit)
			assert.Equal(t, tc.sellWorthy, tc.holding.SellWorthy())
		})
	}
}

func TestHolding_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		holding   Holding
		expectErr bool
	}{
		{"valid", h("AAPL", "150", "180", 10), false},
		{"zero current price is valid", h("AAPL", "150", "0", 10), false},
		{"empty ticker", h("", "150", "180", 10), true},
		{"lowercase ticker", h("aapl", "150", "180", 10), true},
		{"zero buy price", h("AAPL", "0", "180", 10), true},
		{"negative current price", h("AAPL", "150", "-1", 10), true},
		{"buy price too precise", h("AAPL", "1e-13", "180", 10), true},
		{"current price too large", h("AAPL", "150", "1e16", 10), true},
		{"zero amount", h("AAPL", "150", "180", 0), true},
		{"negative amount", h("AAPL", "150", "180", -2), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.holding.Validate()
			if tc.expectErr {
				assert.ErrorIs(t, err, ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewHolding_NormalizesTicker(t *testing.T) {
	got, err := NewHolding("  brk.b ", d("300"), d("410"), 2)
	require.NoError(t, err)
	assert.Equal(t, "BRK.B", got.Ticker)
}

func TestHolding_JSON(t *testing.T) {
	data, err := json.Marshal(h("AAPL", "150", "182.52", 10))
	require.NoError(t, err)
	assert.Equal(t, `{"ticker":"AAPL","currentPrice":182.52,"buyPrice":150,"amount":10}`, string(data))

	var got Holding
	require.NoError(t, json.Unmarshal([]byte(`{"amount":3,"buyPrice":"99.9","ticker":"T","currentPrice":101}`), &got))
	assert.True(t, got.Equal(h("T", "99.9", "101", 3)), "got %+v", got)

	for _, bad := range []string{
		`{"ticker":"T","buyPrice":1,"amount":1}`,
		`{"ticker":"T","currentPrice":1,"buyPrice":1,"amount":1.5}`,
		`{"ticker":"T","currentPrice":"x","buyPrice":1,"amount":1}`,
		`[1,2]`,
	} {
		var hd Holding
		err := json.Unmarshal([]byte(bad), &hd)
		assert.Error(t, err, "Unmarshal(%s)", bad)
		var ve *ValidationError
		assert.False(t, errors.As(err, &ve))
	}
}
