package config

import (
	"fmt"
	"log/slog"
)

// Parser decodes raw data into a target structure.
//
// The path selects a section of the data, colon separated:
//   - "serve" selects settings["serve"]
//   - "github:timeout" selects settings["github"]["timeout"]
//   - "" selects the whole document
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher returns raw data, such as a settings file or a document read
// from standard input.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator is implemented by targets that check themselves after parsing.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by targets that fill in unset values before
// validation. It reports whether anything changed.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that fetches, parses, defaults and validates
// target, in that order.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		return finish(target, path)
	}
}

func finish[T any](target *T, path string) (*T, error) {
	if defaulter, ok := any(target).(Defaulter); ok && defaulter.SetDefaults() {
		slog.Debug("defaults applied", slog.String("path", path))
	}

	if validator, ok := any(target).(Validator); ok {
		err := validator.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}
