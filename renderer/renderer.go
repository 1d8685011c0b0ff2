// Package renderer turns a holdings snapshot into markdown.
package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/holdings"
)

// Sell-worthy markers.
const (
	Sell = "◯"
	Hold = "✖︎"
)

// HoldingsMarkdown renders the full holdings view: the table and the totals.
func HoldingsMarkdown(s holdings.Snapshot) string {
	var b strings.Builder
	RenderHoldings(&b, s)
	fmt.Fprintln(&b)
	RenderTotal(&b, s)
	return b.String()
}

// RenderHoldings writes the table of holdings, one row per holding, numbered from 1.
func RenderHoldings(w io.Writer, s holdings.Snapshot) {
	fmt.Fprintf(w, "# Holdings\n\n")
	if len(s.Lines) == 0 {
		fmt.Fprintln(w, "No holdings yet.")
		return
	}
	fmt.Fprintf(w, "| # | Ticker | Buy Price | Amount | Current Price | Profit (%s) | Profit (%s) | Sell |\n", s.BaseCurrency, s.DisplayCurrency)
	fmt.Fprintln(w, "|---:|:---|---:|---:|---:|---:|---:|:---:|")
	for i, l := range s.Lines {
		fmt.Fprintf(w, "| %d | %s | %s | %d | %s | %s | %s | %s |\n",
			i+1,
			l.Ticker,
			l.BuyPrice,
			l.Amount,
			l.CurrentPrice,
			l.Profit.Fixed(),
			l.ProfitDisplay.Fixed(),
			sellMark(l.SellWorthy()),
		)
	}
}

// RenderTotal writes the aggregate profit in both currencies.
func RenderTotal(w io.Writer, s holdings.Snapshot) {
	fmt.Fprintf(w, "## Total\n\n")
	fmt.Fprintf(w, "💰 %s (≈ %s)\n\n", s.TotalProfit.String(), s.TotalProfitDisplay.String())
	if s.InProfit() {
		fmt.Fprintln(w, "👍 In profit!")
	} else {
		fmt.Fprintln(w, "📉 At a loss…")
	}
	if !s.HasRate() {
		fmt.Fprintf(w, "\n> %s/%s exchange rate unavailable, %s values read as zero.\n", s.BaseCurrency, s.DisplayCurrency, s.DisplayCurrency)
	}
}

func sellMark(sellWorthy bool) string {
	if sellWorthy {
		return Sell
	}
	return Hold
}
