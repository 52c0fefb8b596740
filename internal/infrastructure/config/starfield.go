package config

import "time"

// StarfieldConfig holds the voyage animation settings
type StarfieldConfig struct {
	// Number of visible cells
	VisibleWidth int `mapstructure:"visible_width" validate:"min=3"`

	// Window cell holding the player marker. Zero centers it.
	PlayerOffset int `mapstructure:"player_offset" validate:"min=0,ltfield=VisibleWidth"`

	// Cadence of Advance ticks
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required"`

	// Pause at a destination before resuming
	Dwell time.Duration `mapstructure:"dwell" validate:"required"`

	// Optional YAML destination catalog; empty uses the built-in catalog
	CatalogPath string `mapstructure:"catalog_path"`
}
