package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	filefetcher "github.com/Benaiah/netlify-cms-config-examiner-rewrite/config/fetcher/file"
	yamlparser "github.com/Benaiah/netlify-cms-config-examiner-rewrite/config/parser/yaml"
)

// ErrInvalidSettings is wrapped by every settings validation error.
var ErrInvalidSettings = errors.New("invalid settings")

// Default values.
const (
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultGitHubTimeout = 10 * time.Second
	DefaultServeAddress  = ":8080"
	DefaultMaxBodyBytes  = 1 << 20
	DefaultServeTimeout  = 30 * time.Second
	DefaultRateLimit     = 10
	DefaultBurst         = 20
)

// Settings is the examiner's settings document.
type Settings struct {
	Log     LogSettings     `yaml:"log"`
	GitHub  GitHubSettings  `yaml:"github"`
	Fix     FixSettings     `yaml:"fix"`
	Examine ExamineSettings `yaml:"examine"`
	Serve   ServeSettings   `yaml:"serve"`
}

// LogSettings selects log verbosity and encoding.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// GitHubSettings configures the repository existence lookup.
type GitHubSettings struct {
	Token   string        `yaml:"token"`
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// Offline skips the lookup; only the repository name format is checked.
	Offline bool `yaml:"offline"`
}

// FixSettings configures the fixer.
type FixSettings struct {
	// MaxAttempts caps remediation attempts per rule and node. 0 is unbounded.
	MaxAttempts int `yaml:"max_attempts"`
}

// ExamineSettings configures validation.
type ExamineSettings struct {
	Parallelism int `yaml:"parallelism"`
}

// ServeSettings configures the HTTP API.
type ServeSettings struct {
	Address      string        `yaml:"address"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	Timeout      time.Duration `yaml:"timeout"`
	RateLimit    float64       `yaml:"rate_limit"`
	Burst        int           `yaml:"burst"`
}

// Defaults returns settings with every default applied.
func Defaults() *Settings {
	s := &Settings{}
	s.SetDefaults()

	return s
}

// Load reads settings from path. An empty path, or an empty file, yields
// the defaults.
func Load(path string) (*Settings, error) {
	if path == "" {
		return Defaults(), nil
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	settings, err := Provider(&Settings{}, "")(yamlparser.NewParser(yamlparser.WithStrict()), fetcher)
	if errors.Is(err, yamlparser.ErrEmptyData) {
		return Defaults(), nil
	}

	if err != nil {
		return nil, fmt.Errorf("loading settings %q: %w", path, err)
	}

	return settings, nil
}

// SetDefaults fills every unset value.
func (s *Settings) SetDefaults() bool {
	changed := s.Log.SetDefaults()
	changed = s.GitHub.SetDefaults() || changed
	changed = s.Examine.SetDefaults() || changed
	changed = s.Serve.SetDefaults() || changed

	return changed
}

// Validate checks every section.
func (s *Settings) Validate() error {
	for _, v := range []Validator{&s.Log, &s.GitHub, &s.Fix, &s.Examine, &s.Serve} {
		err := v.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// SetDefaults fills an empty level or format and reports whether it did.
func (l *LogSettings) SetDefaults() bool {
	changed := false

	if l.Level == "" {
		l.Level = DefaultLogLevel
		changed = true
	}

	if l.Format == "" {
		l.Format = DefaultLogFormat
		changed = true
	}

	return changed
}

// Validate rejects formats other than json and text.
func (l *LogSettings) Validate() error {
	switch strings.ToLower(l.Format) {
	case "json", "text":
		return nil
	default:
		return fmt.Errorf("%w: log.format must be json or text, got %q", ErrInvalidSettings, l.Format)
	}
}

// SetDefaults applies DefaultGitHubTimeout when no timeout is set.
func (g *GitHubSettings) SetDefaults() bool {
	if g.Timeout == 0 {
		g.Timeout = DefaultGitHubTimeout

		return true
	}

	return false
}

// Validate requires a non-negative timeout and, when set, an absolute base URL.
func (g *GitHubSettings) Validate() error {
	if g.Timeout < 0 {
		return fmt.Errorf("%w: github.timeout must not be negative", ErrInvalidSettings)
	}

	if g.BaseURL == "" {
		return nil
	}

	u, err := url.Parse(g.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: github.base_url %q is not an absolute URL", ErrInvalidSettings, g.BaseURL)
	}

	return nil
}

// Validate rejects a negative attempt cap.
func (f *FixSettings) Validate() error {
	if f.MaxAttempts < 0 {
		return fmt.Errorf("%w: fix.max_attempts must not be negative", ErrInvalidSettings)
	}

	return nil
}

// SetDefaults examines sequentially unless parallelism is set.
func (e *ExamineSettings) SetDefaults() bool {
	if e.Parallelism == 0 {
		e.Parallelism = 1

		return true
	}

	return false
}

// Validate requires a parallelism of at least one.
func (e *ExamineSettings) Validate() error {
	if e.Parallelism < 1 {
		return fmt.Errorf("%w: examine.parallelism must be at least 1", ErrInvalidSettings)
	}

	return nil
}

// SetDefaults fills unset serve values from the Default constants.
func (s *ServeSettings) SetDefaults() bool {
	changed := false

	if s.Address == "" {
		s.Address = DefaultServeAddress
		changed = true
	}

	if s.MaxBodyBytes == 0 {
		s.MaxBodyBytes = DefaultMaxBodyBytes
		changed = true
	}

	if s.Timeout == 0 {
		s.Timeout = DefaultServeTimeout
		changed = true
	}

	if s.RateLimit == 0 {
		s.RateLimit = DefaultRateLimit
		changed = true
	}

	if s.Burst == 0 {
		s.Burst = DefaultBurst
		changed = true
	}

	return changed
}

// Validate rejects negative limits.
func (s *ServeSettings) Validate() error {
	switch {
	case s.MaxBodyBytes < 0:
		return fmt.Errorf("%w: serve.max_body_bytes must not be negative", ErrInvalidSettings)
	case s.Timeout < 0:
		return fmt.Errorf("%w: serve.timeout must not be negative", ErrInvalidSettings)
	case s.RateLimit < 0:
		return fmt.Errorf("%w: serve.rate_limit must not be negative", ErrInvalidSettings)
	case s.Burst < 0:
		return fmt.Errorf("%w: serve.burst must not be negative", ErrInvalidSettings)
	default:
		return nil
	}
}
