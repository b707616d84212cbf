package middleware

import (
	"log/slog"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

const timeoutBody = `{"error":"request timed out"}`

// Timeout answers 503 with a JSON error when the handler runs past d. The
// handler's context is canceled at the deadline, which stops pending
// repository lookups. Non-positive durations fall back to 30s.
func Timeout(d time.Duration, logger *slog.Logger) Middleware {
	if d <= 0 {
		if logger == nil {
			logger = slog.Default()
		}

		logger.Warn("middleware: timeout must be positive, using default", "provided", d, "default", defaultTimeout)

		d = defaultTimeout
	}

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, d, timeoutBody)
	}
}
