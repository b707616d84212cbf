package engine

import (
	"errors"
	"fmt"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"
)

// ErrMaxAttempts is returned when a rule still fails after the configured
// number of remediation attempts at one position.
var ErrMaxAttempts = errors.New("rule still failing after maximum remediation attempts")

// RuleError ties a failure to the rule and position that produced it.
type RuleError struct {
	Rule string
	Path node.Path
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s at %s: %v", e.Rule, e.Path, e.Err)
}

func (e *RuleError) Unwrap() error {
	return e.Err
}
