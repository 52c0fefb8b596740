package config

import "time"

// DaemonConfig holds the gRPC daemon endpoint configuration
type DaemonConfig struct {
	// Unix socket path for the Fleet service
	SocketPath string `mapstructure:"socket_path" validate:"required"`

	// PID file location for single-instance enforcement
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Per-call timeout used by the CLI client
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"required"`
}
