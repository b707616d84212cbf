// Package logging builds the examiner's log/slog loggers: JSON lines for
// services and log collectors, or logfmt-style text for people reading a
// terminal.
package logging
