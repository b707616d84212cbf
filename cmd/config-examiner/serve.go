package main

import (
	"context"
	"time"

	examiner "github.com/Benaiah/netlify-cms-config-examiner-rewrite"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/api"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	listenerName = "api"
	stopTimeout  = 15 * time.Second
)

func newServeCmd(c *cli) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the examine and fix API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("address") {
				c.settings.Serve.Address = address
			}

			return c.serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address (default from settings, :8080)")

	return cmd
}

// serve runs the API until ctx is canceled or the listener fails.
func (c *cli) serve(ctx context.Context) error {
	rules, err := c.rules(ctx)
	if err != nil {
		return err
	}

	app := examiner.NewApp(
		examiner.WithLogLevel(c.settings.Log.Level),
		examiner.WithLogFormat(c.settings.Log.Format),
		examiner.WithLogOutput(c.errOut),
		examiner.WithModules(
			fx.Supply(c.settings, rules),
			api.Module(listenerName),
		),
		examiner.WithHTTPListener(listenerName),
	)

	err = app.Start(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	select {
	case <-ctx.Done():
	case <-app.Done():
	}

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
	defer cancel()

	return app.Stop(stopCtx) //nolint:wrapcheck
}
