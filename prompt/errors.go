package prompt

import "errors"

// ErrCanceled is returned when the user aborts a prompt.
var ErrCanceled = errors.New("prompt canceled")

// ErrNoMoreAnswers is returned by Scripted once every answer was consumed.
var ErrNoMoreAnswers = errors.New("no more scripted answers")

// ErrNoOptions is returned when a choice is requested with no options.
var ErrNoOptions = errors.New("choice has no options")
