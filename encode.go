package holdings

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// EncodePortfolio writes p as a JSON array of holding records.
func EncodePortfolio(w io.Writer, p Portfolio) error {
	if p == nil {
		p = Portfolio{}
	}
	content, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("could not encode portfolio: %w", err)
	}
	_, err = w.Write(content)
	return err
}

// DecodePortfolio reads a portfolio previously written by EncodePortfolio.
//
// Empty content and a JSON null decode as an empty portfolio. Any other content
// that is not an array of valid holdings returns an error wrapping ErrCorruptState.
func DecodePortfolio(r io.Reader) (Portfolio, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return UnmarshalPortfolio(content)
}

// UnmarshalPortfolio is the []byte flavor of DecodePortfolio.
func UnmarshalPortfolio(content []byte) (Portfolio, error) {
	content = bytes.TrimSpace(content)
	if len(content) == 0 {
		return Portfolio{}, nil
	}
	var p Portfolio
	if err := json.Unmarshal(content, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if p == nil {
		p = Portfolio{}
	}
	return p, nil
}

// MarshalPortfolio is the []byte flavor of EncodePortfolio.
func MarshalPortfolio(p Portfolio) ([]byte, error) {
	var b bytes.Buffer
	if err := EncodePortfolio(&b, p); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}
