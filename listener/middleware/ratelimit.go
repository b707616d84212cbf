package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// limiterTTL is how long per-client limiters are kept before the set is
// rebuilt.
const limiterTTL = time.Hour

type clientLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	reset    time.Time
}

func (c *clientLimiters) get(client string) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.limiters == nil || time.Since(c.reset) > limiterTTL {
		c.limiters = make(map[string]*rate.Limiter)
		c.reset = time.Now()
	}

	limiter, ok := c.limiters[client]
	if !ok {
		limiter = rate.NewLimiter(c.limit, c.burst)
		c.limiters[client] = limiter
	}

	return limiter
}

// RateLimit allows each client address requestsPerSecond requests with bursts
// of up to burst. Excess requests get 429 with a Retry-After header.
// Non-positive arguments fall back to 1 request per second and a burst of 1.
func RateLimit(requestsPerSecond float64, burst int, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}

	if requestsPerSecond <= 0 {
		logger.Warn("middleware: requestsPerSecond must be positive, using default",
			"provided", requestsPerSecond, "default", 1.0)

		requestsPerSecond = 1
	}

	if burst <= 0 {
		logger.Warn("middleware: burst must be positive, using default", "provided", burst, "default", 1)

		burst = 1
	}

	clients := &clientLimiters{limit: rate.Limit(requestsPerSecond), burst: burst}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reservation := clients.get(clientAddress(r)).Reserve()

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				seconds := max(int(math.Ceil(delay.Seconds())), 1)
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				WriteError(w, http.StatusTooManyRequests, "too many requests")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
