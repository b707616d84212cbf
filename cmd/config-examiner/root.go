package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	examiner "github.com/Benaiah/netlify-cms-config-examiner-rewrite"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/cms"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/config"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/engine"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/logging"
	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/repocheck"

	"github.com/spf13/cobra"
)

const tokenEnv = "GITHUB_TOKEN"

// errFailures makes the process exit with status 1 without printing an
// error; the report has already been shown.
var errFailures = errors.New("config has failures")

// cli holds what the subcommands share: streams, global flags and, once
// the root pre-run has loaded them, the settings and logger.
type cli struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	settingsPath string
	logLevel     string
	logFormat    string
	githubToken  string
	offline      bool

	settings *config.Settings
	logger   *slog.Logger
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	c := &cli{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "config-examiner",
		Short: "Examine and fix Netlify CMS configuration files",
		Long: `config-examiner checks a Netlify CMS config.yml against a set of rules
and can fix failures interactively, asking for whatever is missing.`,
		Version:           examiner.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&c.settingsPath, "settings", "", "path to a settings file")
	flags.StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&c.logFormat, "log-format", "", "log format: text or json")
	flags.StringVar(&c.githubToken, "github-token", "", "GitHub token for repository lookups (default $"+tokenEnv+")")
	flags.BoolVar(&c.offline, "offline", false, "only check repository names, never look them up")

	root.AddCommand(
		newExamineCmd(c),
		newFixCmd(c),
		newServeCmd(c),
		newVersionCmd(c),
	)

	return root
}

// setup loads the settings file and lets flags override it.
func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load(c.settingsPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		settings.Log.Level = c.logLevel
	}

	if flags.Changed("log-format") {
		settings.Log.Format = c.logFormat
	}

	if flags.Changed("github-token") {
		settings.GitHub.Token = c.githubToken
	}

	if settings.GitHub.Token == "" {
		settings.GitHub.Token = os.Getenv(tokenEnv)
	}

	if flags.Changed("offline") {
		settings.GitHub.Offline = c.offline
	}

	err = settings.Validate()
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}

	c.settings = settings
	c.logger = logging.NewLogger(logging.LoggerConfig{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
	}, c.errOut)

	return nil
}

// rules returns the CMS rule set, with repository lookups unless offline.
func (c *cli) rules(ctx context.Context) ([]engine.Rule, error) {
	opts := []cms.Option{cms.WithLogger(c.logger)}

	if !c.settings.GitHub.Offline {
		checker, err := repocheck.NewGitHub(ctx,
			repocheck.WithToken(c.settings.GitHub.Token),
			repocheck.WithBaseURL(c.settings.GitHub.BaseURL),
			repocheck.WithTimeout(c.settings.GitHub.Timeout),
		)
		if err != nil {
			return nil, fmt.Errorf("creating GitHub client: %w", err)
		}

		opts = append(opts, cms.WithRepoChecker(checker))
	}

	return cms.Rules(opts...), nil
}
