package listener

import (
	"errors"
	"time"
)

// Defaults.
const (
	DefaultAddress           = ":8080"
	DefaultReadHeaderTimeout = 10 * time.Second
)

var (
	// ErrEmptyAddress is returned when the address is empty.
	ErrEmptyAddress = errors.New("address must not be empty")
	// ErrListenFailed is returned when the address cannot be bound.
	ErrListenFailed = errors.New("failed to listen")
	// ErrShutdownFailed is returned when in-flight requests do not drain in time.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrEmptyName is returned when the listener name is empty.
	ErrEmptyName = errors.New("listener name must not be empty")
	// ErrNilHandler is returned when a nil http.Handler is provided.
	ErrNilHandler = errors.New("handler must not be nil")
)

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address           string
	ReadHeaderTimeout time.Duration
}

// SetDefaults fills unset fields.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}

	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = DefaultReadHeaderTimeout
	}
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	return nil
}
