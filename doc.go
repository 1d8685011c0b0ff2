// Package holdings tracks a set of equity holdings and their unrealized
// profit or loss in two currencies: the base currency the prices are quoted
// in, and a display currency reached through a single exchange rate.
//
// The core functionalities include:
//   - Holdings: validated positions (ticker, buy price, current price, amount)
//     kept in insertion order, where duplicate tickers are distinct entries.
//   - State Engine: the Tracker owns the authoritative list and the exchange
//     rate, applies add, delete and clear operations, and derives per-holding
//     and aggregate profits.
//   - Persistence: a Store keeps a JSON snapshot of the holdings in a single
//     named slot, loaded once at startup and replaced on every change.
//   - Market Data: a PriceSource and a RateSource provide the spot price of a
//     ticker and the base to display conversion rate.
//
// This package serves as the foundational logic for the `hld` command-line
// tool.
package holdings
