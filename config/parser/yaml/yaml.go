package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrEmptyData is returned for empty input.
var ErrEmptyData = errors.New("empty data")

// ErrPathNotFound is returned when the requested section does not exist.
var ErrPathNotFound = errors.New("path not found")

// Option configures a Parser.
type Option func(*Parser)

// WithStrict rejects keys that have no matching struct field, catching
// misspelled settings.
func WithStrict() Option {
	return func(p *Parser) {
		p.decodeOptions = append(p.decodeOptions, yaml.DisallowUnknownField())
	}
}

// Parser decodes YAML settings, optionally from a section of the document.
type Parser struct {
	decodeOptions []yaml.DecodeOption
}

// NewParser creates a parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{}

	for _, apply := range opts {
		apply(p)
	}

	return p
}

// Parse decodes data into target. A non-empty path selects a section by its
// colon-separated keys, for example "serve" or "github:timeout".
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		err := yaml.UnmarshalWithOptions(data, target, p.decodeOptions...)
		if err != nil {
			return fmt.Errorf("unmarshal error: %w", err)
		}

		return nil
	}

	yamlPath, err := yaml.PathString(toYAMLPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	section, err := yamlPath.ReadNode(bytes.NewReader(data))
	if err != nil {
		if yaml.IsNotFoundNodeError(err) {
			return fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}

		return fmt.Errorf("reading path %q: %w", path, err)
	}

	err = yaml.NodeToValue(section, target, p.decodeOptions...)
	if err != nil {
		return fmt.Errorf("decoding path %q: %w", path, err)
	}

	return nil
}

// toYAMLPath turns "a:b" into "$.a.b".
func toYAMLPath(path string) string {
	return "$." + strings.Join(strings.Split(path, ":"), ".")
}
