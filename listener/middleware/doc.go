// Package middleware holds the http.Handler wrappers placed in front of the
// examiner API: request IDs, access logs, panic recovery, body size limits,
// deadlines and per-client rate limiting.
//
// Each constructor returns a func(http.Handler) http.Handler; Chain composes
// them so the first one listed sees the request first.
package middleware
