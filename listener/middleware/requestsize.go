package middleware

import (
	"log/slog"
	"net/http"
)

const defaultMaxRequestSizeBytes int64 = 1 << 20

// MaxRequestSize caps request bodies at limit bytes. Reads past the limit
// fail with *http.MaxBytesError, which handlers turn into 413. Non-positive
// limits fall back to 1 MiB.
func MaxRequestSize(limit int64, logger *slog.Logger) Middleware {
	if limit <= 0 {
		if logger == nil {
			logger = slog.Default()
		}

		logger.Warn("middleware: body limit must be positive, using default",
			"provided", limit, "default", defaultMaxRequestSizeBytes)

		limit = defaultMaxRequestSizeBytes
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
