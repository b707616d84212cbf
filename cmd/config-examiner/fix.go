package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/document"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/prompt"

	"github.com/spf13/cobra"
)

var errStdinAnswers = errors.New("a document read from stdin needs --answer or --answers-file")

type fixFlags struct {
	write       bool
	answers     []string
	answersFile string
	maxAttempts int
}

func newFixCmd(c *cli) *cobra.Command {
	var flags fixFlags

	cmd := &cobra.Command{
		Use:   "fix <config.yml|->",
		Short: "Fix a config file, asking for missing values",
		Long: `Fix a config file by running the remediation of every failing rule until
the rule passes. Questions are asked on the terminal, or answered in order
from --answer and --answers-file when given. The fixed document is printed,
or written back with --write. A missing file starts from an empty config.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.fix(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "write the result back to the file")
	cmd.Flags().StringArrayVarP(&flags.answers, "answer", "a", nil, "answer to the next question (repeatable)")
	cmd.Flags().StringVar(&flags.answersFile, "answers-file", "", "YAML list of answers, used after --answer")
	cmd.Flags().IntVar(&flags.maxAttempts, "max-attempts", 0, "give up after this many remediations per rule and node (0: never)")

	return cmd
}

func (c *cli) fix(cmd *cobra.Command, path string, flags fixFlags) error {
	if flags.write && path == stdinPath {
		return errors.New("--write needs a file, not stdin")
	}

	maxAttempts := c.settings.Fix.MaxAttempts
	if cmd.Flags().Changed("max-attempts") {
		maxAttempts = flags.maxAttempts
	}

	input, err := c.inputProvider(path, flags)
	if err != nil {
		return err
	}

	root, err := readDocument(path, c.in)
	if err != nil {
		return err
	}

	rules, err := c.rules(cmd.Context())
	if err != nil {
		return err
	}

	p := newPrinter(c.errOut)

	fixed, err := engine.Fix(cmd.Context(), input, rules, root,
		engine.WithLogger(c.logger),
		engine.WithMaxAttempts(maxAttempts),
		engine.WithNotifier(p.outcome),
	)
	if err != nil {
		return fmt.Errorf("fixing %s: %w", displayName(path), err)
	}

	out, err := document.Encode(fixed)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if !flags.write {
		_, err = c.out.Write(out)
		if err != nil {
			return fmt.Errorf("writing document: %w", err)
		}

		return nil
	}

	err = os.WriteFile(path, out, fileMode(path))
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	c.logger.Info("config written", "path", path)

	return nil
}

// inputProvider picks scripted answers when any were given, a Bubble Tea
// prompt on a terminal and plain line prompts otherwise.
func (c *cli) inputProvider(path string, flags fixFlags) (engine.InputProvider, error) {
	answers := append([]string(nil), flags.answers...)

	if flags.answersFile != "" {
		fromFile, err := readAnswers(flags.answersFile)
		if err != nil {
			return nil, err
		}

		answers = append(answers, fromFile...)
	}

	switch {
	case len(answers) > 0:
		return prompt.NewScripted(answers...), nil
	case path == stdinPath:
		return nil, errStdinAnswers
	case isTerminal(c.in):
		return prompt.NewTerminal(c.in, c.errOut), nil
	default:
		return prompt.NewLine(c.in, c.errOut), nil
	}
}

func fileMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil {
		return 0o644
	}

	return info.Mode().Perm()
}
