package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path names a directory.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrTooLarge is returned when the file exceeds the configured size limit.
var ErrTooLarge = errors.New("file too large")

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithMaxBytes rejects files larger than limit bytes. Zero disables the
// check.
func WithMaxBytes(limit int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = limit
	}
}

// Fetcher serves the contents of one file, read once when constructed.
type Fetcher struct {
	path     string
	maxBytes int64
	data     []byte
}

// NewFetcher returns a constructor reading fpath, in the shape fx expects
// for a provider.
func NewFetcher(fpath string, opts ...Option) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		f := &Fetcher{path: filepath.Clean(fpath)}

		for _, apply := range opts {
			apply(f)
		}

		stat, err := os.Stat(f.path)
		if err != nil {
			return nil, fmt.Errorf("stat file %q: %w", f.path, err)
		}

		if stat.IsDir() {
			return nil, fmt.Errorf("path %q: %w", f.path, ErrPathIsDirectory)
		}

		if f.maxBytes > 0 && stat.Size() > f.maxBytes {
			return nil, fmt.Errorf("path %q: %w: %d bytes, limit %d", f.path, ErrTooLarge, stat.Size(), f.maxBytes)
		}

		f.data, err = os.ReadFile(f.path) // #nosec G304 -- the path is chosen by the user running the tool
		if err != nil {
			return nil, fmt.Errorf("reading file %q: %w", f.path, err)
		}

		return f, nil
	}
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.path
}

// Fetch returns a copy of the file contents.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}
