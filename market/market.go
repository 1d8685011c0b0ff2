// Package market fetches spot prices and the exchange rate from the quote
// service: GET /price/{ticker} answers {"price": number|null} and
// GET /exchange-rate answers {"rate": number|null}. Either may answer
// {"error": string} instead.
//
// The client neither retries nor caches: every call is one request.
package market

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/holdings"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is where the quote service listens by default.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Client queries the quote service.
type Client struct {
	base   string
	client *http.Client
	log    zerolog.Logger
}

var (
	_ holdings.PriceSource = (*Client)(nil)
	_ holdings.RateSource  = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(c *http.Client) Option { return func(m *Client) { m.client = c } }

// WithLogger sets the client's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(m *Client) { m.log = l.With().Str("client", "quotes").Logger() }
}

// New returns a client for the quote service at baseURL (DefaultBaseURL if empty).
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		base:   strings.TrimSuffix(baseURL, "/"),
		client: http.DefaultClient,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchPrice returns the current price of ticker. A null or missing price is
// reported as holdings.ErrPriceUnavailable, any other failure as holdings.ErrFetch.
func (c *Client) FetchPrice(ctx context.Context, ticker string) (decimal.Decimal, error) {
	addr := c.base + "/price/" + url.PathEscape(ticker)
	price, err := c.fetchNumber(ctx, addr, "$.price", holdings.ErrPriceUnavailable)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot get price of %q: %w", ticker, err)
	}
	if price.IsNegative() {
		return decimal.Zero, fmt.Errorf("cannot get price of %q: %w: negative price %v", ticker, holdings.ErrPriceUnavailable, price)
	}
	c.log.Debug().Str("ticker", ticker).Stringer("price", price).Msg("fetched price")
	return price, nil
}

// FetchExchangeRate returns the base to display currency rate. A null, missing
// or non positive rate is reported as holdings.ErrRateUnavailable, any other
// failure as holdings.ErrFetch.
func (c *Client) FetchExchangeRate(ctx context.Context) (decimal.Decimal, error) {
	rate, err := c.fetchNumber(ctx, c.base+"/exchange-rate", "$.rate", holdings.ErrRateUnavailable)
	if err != nil {
		return decimal.Zero, fmt.Errorf("cannot get exchange rate: %w", err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("cannot get exchange rate: %w: got %v", holdings.ErrRateUnavailable, rate)
	}
	c.log.Debug().Stringer("rate", rate).Msg("fetched exchange rate")
	return rate, nil
}

// fetchNumber GETs addr and extracts the number at path. missing is the error
// returned when the path holds null or nothing.
func (c *Client) fetchNumber(ctx context.Context, addr, path string, missing error) (decimal.Decimal, error) {
	var jobj any
	if err := c.jwget(ctx, addr, &jobj); err != nil {
		return decimal.Zero, err
	}

	if msg, err := jsonpath.Get("$.error", jobj); err == nil && msg != nil {
		return decimal.Zero, fmt.Errorf("%w: service error: %v", holdings.ErrFetch, msg)
	}

	jval, err := jsonpath.Get(path, jobj)
	if err != nil || jval == nil {
		return decimal.Zero, fmt.Errorf("%w: no value at %s", missing, path)
	}
	val, err := toDecimal(jval)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s: %w", missing, path, err)
	}
	return val, nil
}

// jwget performs an HTTP GET request and unmarshals the JSON response into data,
// keeping numbers as json.Number so that no digit is lost.
func (c *Client) jwget(ctx context.Context, addr string, data any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", holdings.ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", holdings.ErrFetch, err)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("method", req.Method).Str("url", addr).Int("status", resp.StatusCode).Msg("quote service")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: cannot http GET %v%v: %v", holdings.ErrFetch, req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return fmt.Errorf("%w: %w", holdings.ErrFetch, err)
	}
	dec := json.NewDecoder(&buf)
	dec.UseNumber()
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("%w: invalid json from %v%v: %w", holdings.ErrFetch, req.URL.Host, req.URL.Path, err)
	}
	return nil
}

// toDecimal converts a decoded json value into a decimal. Some services send
// numbers as strings, those are accepted too.
func toDecimal(v any) (decimal.Decimal, error) {
	switch t := v.(type) {
	case json.Number:
		return decimal.NewFromString(t.String())
	case float64:
		return decimal.NewFromFloat(t), nil
	case string:
		return decimal.NewFromString(strings.TrimSpace(t))
	default:
		return decimal.Zero, fmt.Errorf("not a number: %v", v)
	}
}
