// Package engine applies path-scoped rules to a configuration tree.
//
// Rules are independent predicates over a (node, path) pair. A rule decides
// whether it applies to a position from the shape of the path, and when it
// does it returns an Outcome that either passes or fails. A failing Outcome
// may carry a Remediation: an action that asks an InputProvider for data
// and returns a full replacement for the failing node.
//
// Two walks are provided:
//   - Examine visits every position depth-first, pre-order, and collects a
//     Report of every applicable outcome with remediations stripped.
//   - Fix visits the same positions in the same order. At each position it
//     applies the rules in order, invoking remediations and re-checking the
//     same rule until it passes, then descends into the children and
//     rebuilds the parent without mutating the input tree.
//
// # Writing rules
//
//	backendExists := engine.NewRule("backendExists",
//	    func(_ context.Context, n node.Node, path node.Path) (*engine.Outcome, error) {
//	        if !path.IsRoot() {
//	            return engine.Inapplicable()
//	        }
//	        if !n.Has("backend") {
//	            return engine.Fail("The config has no backend settings!",
//	                func(context.Context, engine.InputProvider) (node.Node, error) {
//	                    return n.WithField("backend", node.NewMapping()), nil
//	                })
//	        }
//	        return engine.Pass("The config has backend settings.")
//	    })
//
// Checks must not hold state between calls: Examine and Fix call them
// repeatedly on the same positions.
package engine
