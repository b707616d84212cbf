package listener

import "time"

// Option configures an HTTP listener.
type Option func(*Config)

// WithAddress sets the address to listen on. Use port 0 to let the system
// pick one; Server.Addr reports the result.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithReadHeaderTimeout bounds how long a client may take to send headers.
func WithReadHeaderTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.ReadHeaderTimeout = timeout
	}
}
