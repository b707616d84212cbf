// Command config-examiner checks a Netlify CMS config.yml and walks the
// user through fixing whatever it finds.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)

	stop()

	os.Exit(exitCode(err))
}

// exitCode is 0 on success, 1 when the examined config has failures and 2
// on any other error, which is printed to stderr.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailures):
		return 1
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)

		return 2
	}
}
