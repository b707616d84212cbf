package engine

import (
	"context"

	"github.com/Benaiah/netlify-cms-config-examiner-rewrite/node"

	"golang.org/x/sync/errgroup"
)

// Report is the ordered audit trail of a walk: depth-first, pre-order, a
// node's own outcomes before its children's.
type Report []Outcome

// Failures returns the failing outcomes in report order.
func (r Report) Failures() Report {
	var out Report

	for _, o := range r {
		if !o.Passed {
			out = append(out, o)
		}
	}

	return out
}

// OK reports whether no outcome failed.
func (r Report) OK() bool {
	for _, o := range r {
		if !o.Passed {
			return false
		}
	}

	return true
}

// At returns the outcomes recorded at path.
func (r Report) At(path node.Path) Report {
	var out Report

	for _, o := range r {
		if o.Path.Equal(path) {
			out = append(out, o)
		}
	}

	return out
}

// ExamineOption configures Examine.
type ExamineOption func(*examiner)

// WithParallelism validates up to limit sibling subtrees concurrently at
// each level. Values below 2 keep the walk sequential. Report order does not
// depend on the setting.
func WithParallelism(limit int) ExamineOption {
	return func(e *examiner) {
		e.parallelism = limit
	}
}

type examiner struct {
	rules       []Rule
	parallelism int
}

// Examine applies every rule at every position of root and returns the
// resulting Report. Remediations are stripped from the outcomes; the
// InputProvider is never consulted.
func Examine(ctx context.Context, rules []Rule, root node.Node, opts ...ExamineOption) (Report, error) {
	e := &examiner{rules: rules, parallelism: 1}

	for _, apply := range opts {
		apply(e)
	}

	return e.walk(ctx, root, node.Root())
}

func (e *examiner) walk(ctx context.Context, n node.Node, path node.Path) (Report, error) {
	report, err := e.local(ctx, n, path)
	if err != nil {
		return nil, err
	}

	if n.IsScalar() {
		return report, nil
	}

	keys := n.Keys()
	children := make([]Report, len(keys))

	if e.parallelism > 1 && len(keys) > 1 {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(e.parallelism)

		for i, key := range keys {
			group.Go(func() error {
				child, _ := n.Child(key)

				sub, walkErr := e.walk(groupCtx, child, path.Append(key))
				children[i] = sub

				return walkErr
			})
		}

		err = group.Wait()
		if err != nil {
			return nil, err //nolint:wrapcheck // already a RuleError
		}
	} else {
		for i, key := range keys {
			child, _ := n.Child(key)

			children[i], err = e.walk(ctx, child, path.Append(key))
			if err != nil {
				return nil, err
			}
		}
	}

	for _, sub := range children {
		report = append(report, sub...)
	}

	return report, nil
}

func (e *examiner) local(ctx context.Context, n node.Node, path node.Path) (Report, error) {
	var report Report

	for _, rule := range e.rules {
		outcome, err := evaluate(ctx, rule, n, path)
		if err != nil {
			return nil, err
		}

		if outcome == nil {
			continue
		}

		outcome.Remediation = nil
		report = append(report, *outcome)
	}

	return report, nil
}
