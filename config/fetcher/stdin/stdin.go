package stdin

import (
	"errors"
	"fmt"
	"io"
)

// ErrTooLarge is returned when the stream exceeds the configured limit.
var ErrTooLarge = errors.New("input too large")

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBytes rejects streams longer than limit bytes. Zero disables the
// check.
func WithMaxBytes(limit int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = limit
	}
}

// Fetcher serves bytes drained from a reader when constructed.
type Fetcher struct {
	maxBytes int64
	data     []byte
}

// NewFetcher returns a constructor that reads r to its end.
func NewFetcher(r io.Reader, opts ...Option) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		f := &Fetcher{}

		for _, apply := range opts {
			apply(f)
		}

		src := r
		if f.maxBytes > 0 {
			src = io.LimitReader(r, f.maxBytes+1)
		}

		data, err := io.ReadAll(src)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}

		if f.maxBytes > 0 && int64(len(data)) > f.maxBytes {
			return nil, fmt.Errorf("%w: limit %d bytes", ErrTooLarge, f.maxBytes)
		}

		f.data = data

		return f, nil
	}
}

// Fetch returns a copy of the bytes read.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
