package examiner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App hosts the long-running parts of the examiner, such as the HTTP API,
// in an fx container.
type App struct {
	app    *fx.App
	logger *slog.Logger
}

// NewApp builds the container. The logger is available to every module as
// *slog.Logger and becomes the slog default.
func NewApp(opts ...Option) *App {
	options := Options{Output: os.Stderr}

	for _, apply := range opts {
		apply(&options)
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}
	logger := logging.NewLogger(loggerConfig, options.Output)
	slog.SetDefault(logger)

	return &App{
		logger: logger,
		app: fx.New(
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.SlogLogger{Logger: logger}
			}),
			fx.Supply(loggerConfig),
			fx.Supply(logger),
			fx.Options(options.Modules...),
		),
	}
}

// Err reports a container construction error, such as a missing dependency.
func (app *App) Err() error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	return app.app.Err() //nolint:wrapcheck
}

// Start starts every module.
func (app *App) Start(ctx context.Context) error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Start(ctx)
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Run starts the app and blocks until an OS signal or a shutdown request,
// then stops it.
func (app *App) Run() {
	if app == nil || app.app == nil {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.app.Run()
}

// Done is closed when the app receives an OS signal or a module requests a
// shutdown through fx.Shutdowner. A nil app returns nil.
func (app *App) Done() <-chan os.Signal {
	if app == nil || app.app == nil {
		return nil
	}

	return app.app.Done()
}

// Stop stops every module.
func (app *App) Stop(ctx context.Context) error {
	if app == nil || app.app == nil {
		return errAppNotInitialized
	}

	err := app.app.Stop(ctx)
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}
