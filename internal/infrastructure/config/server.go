package config

import "time"

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required"`

	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`

	// Mark the session cookie Secure (enable behind TLS)
	CookieSecure bool `mapstructure:"cookie_secure"`

	// Per-client limit on login and join submissions
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds token bucket configuration
type RateLimitConfig struct {
	// Sustained requests per minute
	PerMinute int `mapstructure:"per_minute" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
