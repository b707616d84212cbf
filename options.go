package examiner

import (
	"io"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/listener"

	"go.uber.org/fx"
)

// Options holds the App configuration.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	Output    io.Writer
}

// Option configures the App.
type Option func(*Options)

// WithModules adds fx modules.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener serves the http.Handler tagged name on a listener of the
// same name. See listener.NewModule.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithLogLevel sets the level: "debug", "info", "warn" or "error".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" or "text" log lines.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput redirects logs, which go to stderr by default.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		if w != nil {
			opts.Output = w
		}
	}
}
