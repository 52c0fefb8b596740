package config

import "time"

// AuthConfig holds session and password settings
type AuthConfig struct {
	// Session lifetime
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"required"`

	// Number of sessions kept in the lookup cache
	SessionCacheSize int `mapstructure:"session_cache_size" validate:"min=1"`

	// How often expired sessions are purged
	SweepInterval time.Duration `mapstructure:"sweep_interval" validate:"required"`

	// bcrypt work factor
	BcryptCost int `mapstructure:"bcrypt_cost" validate:"min=4,max=31"`

	// Name of the session cookie
	CookieName string `mapstructure:"cookie_name" validate:"required"`
}
