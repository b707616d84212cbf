package engine

import (
	"context"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"
)

// Remediation produces a full replacement for a failing node, usually the
// same node with one field merged in. It may block on the InputProvider.
type Remediation func(ctx context.Context, input InputProvider) (node.Node, error)

// Outcome is the result of one applicable rule at one position.
// Remediation is only set on failing outcomes and never appears in a Report.
type Outcome struct {
	Name        string      `json:"name"`
	Passed      bool        `json:"passed"`
	Message     string      `json:"message"`
	Path        node.Path   `json:"path"`
	Remediation Remediation `json:"-"`
}

// Fixable reports whether the outcome failed and carries a remediation.
func (o Outcome) Fixable() bool {
	return !o.Passed && o.Remediation != nil
}

// Rule decides applicability and correctness for one (node, path) pair.
//
// Check returns a nil Outcome when the rule does not pertain to the
// position. An error is a collaborator failure and aborts the whole walk.
type Rule interface {
	Name() string
	Check(ctx context.Context, n node.Node, path node.Path) (*Outcome, error)
}

// CheckFunc is the body of a rule built with NewRule.
type CheckFunc func(ctx context.Context, n node.Node, path node.Path) (*Outcome, error)

type funcRule struct {
	name  string
	check CheckFunc
}

// NewRule returns a Rule named name whose outcomes are stamped with that name.
func NewRule(name string, check CheckFunc) Rule {
	return &funcRule{name: name, check: check}
}

func (r *funcRule) Name() string { return r.name }

func (r *funcRule) Check(ctx context.Context, n node.Node, path node.Path) (*Outcome, error) {
	outcome, err := r.check(ctx, n, path)
	if err != nil || outcome == nil {
		return nil, err
	}

	outcome.Name = r.name

	return outcome, nil
}

// Inapplicable is the CheckFunc result for positions a rule does not cover.
func Inapplicable() (*Outcome, error) {
	return nil, nil //nolint:nilnil // nil outcome means "no opinion"
}

// Pass returns a passing outcome with an informational message.
func Pass(message string) (*Outcome, error) {
	return &Outcome{Passed: true, Message: message}, nil
}

// Fail returns a failing outcome. A nil remediation makes the failure
// terminal: it is reported but cannot be fixed automatically.
func Fail(message string, remediation Remediation) (*Outcome, error) {
	return &Outcome{Passed: false, Message: message, Remediation: remediation}, nil
}

// evaluate runs rule at one position and stamps the path onto the outcome.
func evaluate(ctx context.Context, rule Rule, n node.Node, path node.Path) (*Outcome, error) {
	outcome, err := rule.Check(ctx, n, path)
	if err != nil {
		return nil, &RuleError{Rule: rule.Name(), Path: path, Err: err}
	}

	if outcome == nil {
		return nil, nil //nolint:nilnil
	}

	if outcome.Name == "" {
		outcome.Name = rule.Name()
	}

	outcome.Path = path

	if outcome.Passed {
		outcome.Remediation = nil
	}

	return outcome, nil
}
