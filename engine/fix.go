package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"
)

// FixOption configures a Fixer.
type FixOption func(*Fixer)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) FixOption {
	return func(f *Fixer) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMaxAttempts caps the number of remediations invoked for one rule at
// one position. Zero, the default, leaves the loop unbounded.
func WithMaxAttempts(attempts int) FixOption {
	return func(f *Fixer) {
		f.maxAttempts = max(attempts, 0)
	}
}

// WithNotifier replaces the default diagnostic sink, which logs every
// failing outcome at WARN. The notifier sees each failing evaluation,
// including every repeat after a remediation.
func WithNotifier(notify func(Outcome)) FixOption {
	return func(f *Fixer) {
		f.notify = notify
	}
}

// Fixer repairs trees by running remediations until rules pass.
// A Fixer holds no state between calls to Fix.
type Fixer struct {
	input       InputProvider
	rules       []Rule
	logger      *slog.Logger
	maxAttempts int
	notify      func(Outcome)
}

// NewFixer returns a Fixer that applies rules in order and asks input for
// replacement values.
func NewFixer(input InputProvider, rules []Rule, opts ...FixOption) *Fixer {
	f := &Fixer{
		input:  input,
		rules:  rules,
		logger: slog.Default(),
	}

	for _, apply := range opts {
		apply(f)
	}

	if f.notify == nil {
		f.notify = f.logFailure
	}

	return f
}

// Fix is a shorthand for NewFixer(input, rules, opts...).Fix(ctx, root).
func Fix(ctx context.Context, input InputProvider, rules []Rule, root node.Node, opts ...FixOption) (node.Node, error) {
	return NewFixer(input, rules, opts...).Fix(ctx, root)
}

// Fix returns a corrected copy of root. The input tree is never modified.
// Any rule, remediation or provider error aborts the whole call; no partial
// tree is returned.
func (f *Fixer) Fix(ctx context.Context, root node.Node) (node.Node, error) {
	fixed, _, err := f.fixNode(ctx, root, node.Root())
	if err != nil {
		return node.Node{}, err
	}

	return fixed, nil
}

// fixNode reports whether any remediation ran at or below path. Untouched
// subtrees are returned as is so they keep sharing storage with the input.
func (f *Fixer) fixNode(ctx context.Context, n node.Node, path node.Path) (node.Node, bool, error) {
	changed := false

	for _, rule := range f.rules {
		fixed, remediated, err := f.applyRule(ctx, rule, n, path)
		if err != nil {
			return node.Node{}, false, err
		}

		if remediated {
			n, changed = fixed, true
		}
	}

	if n.IsScalar() {
		return n, changed, nil
	}

	for _, key := range n.Keys() {
		child, _ := n.Child(key)

		fixed, childChanged, err := f.fixNode(ctx, child, path.Append(key))
		if err != nil {
			return node.Node{}, false, err
		}

		if childChanged {
			n, changed = n.With(key, fixed), true
		}
	}

	return n, changed, nil
}

// applyRule re-checks rule at path after every remediation until the rule
// passes, becomes inapplicable, or fails without a remediation. The bool is
// true once any remediation has replaced n.
func (f *Fixer) applyRule(ctx context.Context, rule Rule, n node.Node, path node.Path) (node.Node, bool, error) {
	remediated := false

	for attempt := 1; ; attempt++ {
		outcome, err := evaluate(ctx, rule, n, path)
		if err != nil {
			return node.Node{}, false, err
		}

		if outcome == nil || outcome.Passed {
			return n, remediated, nil
		}

		f.notify(*outcome)

		if outcome.Remediation == nil {
			return n, remediated, nil
		}

		if f.maxAttempts > 0 && attempt > f.maxAttempts {
			return node.Node{}, false, &RuleError{
				Rule: rule.Name(),
				Path: path,
				Err:  fmt.Errorf("%w (%d)", ErrMaxAttempts, f.maxAttempts),
			}
		}

		f.logger.Debug("applying remediation",
			slog.String("rule", rule.Name()),
			slog.String("path", path.String()),
			slog.Int("attempt", attempt),
		)

		replacement, err := outcome.Remediation(ctx, f.input)
		if err != nil {
			return node.Node{}, false, &RuleError{Rule: rule.Name(), Path: path, Err: err}
		}

		n, remediated = replacement, true
	}
}

func (f *Fixer) logFailure(outcome Outcome) {
	attrs := []any{
		slog.String("rule", outcome.Name),
		slog.String("path", outcome.Path.String()),
		slog.Bool("fixable", outcome.Remediation != nil),
	}

	f.logger.Warn(outcome.Message, attrs...)
}
