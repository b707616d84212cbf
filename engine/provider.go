package engine

import "context"

// InputProvider supplies replacement values while a tree is being fixed.
//
// Both operations block until an external actor (a person at a terminal,
// a scripted answer list, an HTTP request body) produces exactly one value.
// The engine never validates the returned value itself; the next check of
// the rule that asked for it does.
type InputProvider interface {
	// RequestText asks for free-form text.
	RequestText(ctx context.Context, prompt string) (string, error)
	// RequestChoice asks for one of options.
	RequestChoice(ctx context.Context, prompt string, options []string) (string, error)
}
