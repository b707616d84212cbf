package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// params are the dependencies of a named listener. Handler and Config are
// looked up under the listener's name.
type params struct {
	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Handler    http.Handler
	Config     Config
	Logger     *slog.Logger
}

// NewModule creates an fx module serving the http.Handler named name.
//
// With options, the module supplies its own Config under the same name;
// without them a named Config must come from elsewhere in the graph. A
// *slog.Logger in the graph is used when present.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(tag))))
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(
			func(lc fx.Lifecycle, sd fx.Shutdowner, handler http.Handler, cfg Config, logger *slog.Logger) error {
				return register(name, params{
					Lifecycle:  lc,
					Shutdowner: sd,
					Handler:    handler,
					Config:     cfg,
					Logger:     logger,
				})
			},
			fx.ParamTags("", "", tag, tag, `optional:"true"`),
		),
	))

	return fx.Module(name, moduleOpts...)
}

func register(name string, p params) error {
	if p.Logger == nil {
		p.Logger = slog.Default()
	}

	srv, err := NewServer(name, p.Handler, p.Config,
		WithLogger(p.Logger),
		OnServeError(func() {
			shutdownErr := p.Shutdowner.Shutdown()
			if shutdownErr != nil {
				p.Logger.Error("failed to trigger shutdown", "name", name, "error", shutdownErr)
			}
		}),
	)
	if err != nil {
		return err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStart: srv.Start,
		OnStop:  srv.Stop,
	})

	return nil
}
