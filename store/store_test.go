package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/holdings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePortfolio() holdings.Portfolio {
	return holdings.Portfolio{
		{Ticker: "AAPL", BuyPrice: decimal.RequireFromString("150"), CurrentPrice: decimal.RequireFromString("180"), Amount: 10},
		{Ticker: "MSFT", BuyPrice: decimal.RequireFromString("410.25"), CurrentPrice: decimal.RequireFromString("399.99"), Amount: 2},
		{Ticker: "AAPL", BuyPrice: decimal.RequireFromString("120"), CurrentPrice: decimal.RequireFromString("180"), Amount: 1},
	}
}

// testStores opens every store implementation in its own temporary directory.
func testStores(t *testing.T) map[string]holdings.Store {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "holdings.db"), holdings.DefaultSlot, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]holdings.Store{
		"file":   NewFile(filepath.Join(t.TempDir(), "nested"), holdings.DefaultSlot, zerolog.Nop()),
		"sqlite": db,
	}
}

func TestStore_LoadEmpty(t *testing.T) {
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			p, err := s.Load(context.Background())
			require.NoError(t, err)
			assert.NotNil(t, p)
			assert.Empty(t, p)
		})
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			want := samplePortfolio()
			require.NoError(t, s.Save(ctx, want))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %v, want %v", got, want)
		})
	}
}

func TestStore_SaveReplaces(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Save(ctx, samplePortfolio()))
			require.NoError(t, s.Save(ctx, samplePortfolio()[1:2]))

			got, err := s.Load(ctx)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "MSFT", got[0].Ticker)

			require.NoError(t, s.Save(ctx, holdings.Portfolio{}))
			got, err = s.Load(ctx)
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestFile_Corrupt(t *testing.T) {
	s := NewFile(t.TempDir(), "slot", zerolog.Nop())
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, holdings.ErrCorruptState)
}

func TestFile_SaveLeavesNoTemporaryFile(t *testing.T) {
	dir := t.TempDir()
	s := NewFile(dir, "slot", zerolog.Nop())
	require.NoError(t, s.Save(context.Background(), samplePortfolio()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "slot.json", entries[0].Name())

	content, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(content), `{"ticker":"AAPL","currentPrice":180,"buyPrice":150,"amount":10}`)
}

func TestSQLite_Corrupt(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "holdings.db"), "slot", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	_, err = s.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", "slot", "[{]")
	require.NoError(t, err)

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, holdings.ErrCorruptState)
}

func TestSQLite_SlotsAreIndependent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.db")
	a, err := OpenSQLite(path, "a", zerolog.Nop())
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.Save(context.Background(), samplePortfolio()))

	b, err := OpenSQLite(path, "b", zerolog.Nop())
	require.NoError(t, err)
	defer b.Close()
	got, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holdings.db")
	s, err := OpenSQLite(path, "slot", zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Save(context.Background(), samplePortfolio()))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path, "slot", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, samplePortfolio().Equal(got))
}
