package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/config"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/listener"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/listener/middleware"

	"go.uber.org/fx"
)

// Wrap puts the request middleware in front of h: request ids, access
// logs, panic recovery, per-client rate limiting, the body limit and the
// request timeout, outermost first.
func Wrap(h http.Handler, serve config.ServeSettings, logger *slog.Logger) http.Handler {
	return middleware.Chain(h,
		middleware.RequestID(),
		middleware.Logging(logger),
		middleware.Recovery(logger),
		middleware.RateLimit(serve.RateLimit, serve.Burst, logger),
		middleware.MaxRequestSize(serve.MaxBodyBytes, logger),
		middleware.Timeout(serve.Timeout, logger),
	)
}

// Module provides, under name, the wrapped handler and the listener
// config taken from the serve settings. The graph must supply
// *config.Settings, []engine.Rule and *slog.Logger. Pair it with
// listener.NewModule(name) and no options.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(name string) fx.Option {
	tag := fmt.Sprintf(`name:"%s"`, name)

	return fx.Module("api",
		fx.Provide(
			fx.Annotate(
				func(settings *config.Settings, rules []engine.Rule, logger *slog.Logger) http.Handler {
					h := NewHandler(rules,
						WithLogger(logger),
						WithParallelism(settings.Examine.Parallelism),
						WithMaxAttempts(settings.Fix.MaxAttempts),
					)

					return Wrap(h, settings.Serve, logger)
				},
				fx.ResultTags(tag),
			),
			fx.Annotate(
				func(settings *config.Settings) listener.Config {
					return listener.Config{Address: settings.Serve.Address}
				},
				fx.ResultTags(tag),
			),
		),
	)
}
