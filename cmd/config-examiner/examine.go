package main

import (
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"

	"github.com/spf13/cobra"
)

func newExamineCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "examine <config.yml|->",
		Short: "Check a config file and report every rule outcome",
		Long: `Check a config file against the rules and print each outcome.
The exit status is 1 when any rule fails. Use "-" to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			root, err := readDocument(path, c.in)
			if err != nil {
				return err
			}

			rules, err := c.rules(cmd.Context())
			if err != nil {
				return err
			}

			report, err := engine.Examine(cmd.Context(), rules, root,
				engine.WithParallelism(c.settings.Examine.Parallelism))
			if err != nil {
				return err //nolint:wrapcheck // RuleError names the rule and path
			}

			if asJSON {
				err = writeJSONReport(c.out, displayName(path), report)
				if err != nil {
					return err
				}
			} else {
				newPrinter(c.out).report(displayName(path), report)
			}

			if !report.OK() {
				return errFailures
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}
