package config

// LoggingConfig configures the process logger shared by the HTTP server,
// the daemon socket and the voyage goroutines
type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"required,oneof=json text"`
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// FilePath is required when Output is "file"
	FilePath string         `mapstructure:"file_path"`
	Rotation RotationConfig `mapstructure:"rotation"`

	// Service is attached to every entry as the "service" field
	Service string `mapstructure:"service"`

	IncludeCaller     bool `mapstructure:"include_caller"`
	IncludeStacktrace bool `mapstructure:"include_stacktrace"`
}

// RotationConfig maps onto lumberjack's size and age limits
type RotationConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	MaxSize    int  `mapstructure:"max_size" validate:"min=1"`    // megabytes
	MaxBackups int  `mapstructure:"max_backups" validate:"min=0"` // files
	MaxAge     int  `mapstructure:"max_age" validate:"min=0"`     // days
	Compress   bool `mapstructure:"compress"`
}
