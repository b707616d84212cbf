package main

import (
	"fmt"

	examiner "github.com/Benaiah/netlify-cms-config-examiner-rewrite"

	"github.com/spf13/cobra"
)

func newVersionCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skips loading settings.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(*cobra.Command, []string) error {
			_, err := fmt.Fprintf(c.out, "config-examiner %s (commit %s, built %s)\n",
				examiner.Version, examiner.Commit, examiner.CompiledAt)

			return err //nolint:wrapcheck
		},
	}
}
