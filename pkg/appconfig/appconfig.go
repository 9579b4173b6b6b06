package appconfig

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
)

// Config holds the settings read from the config file and environment.
// Sizes are humanized strings ("64KiB", "1MB") so the YAML stays readable.
type Config struct {
	BufferSize  string `mapstructure:"buffer_size"`
	MinHoleSize string `mapstructure:"min_hole_size"`
	NoProgress  bool   `mapstructure:"no_progress"`
	Verbose     bool   `mapstructure:"verbose"`
}

// BufferSizeBytes parses the configured buffer size. Zero means the
// built-in default.
func (c *Config) BufferSizeBytes() (int, error) {
	if c.BufferSize == "" {
		return 0, nil
	}
	v, err := humanize.ParseBytes(c.BufferSize)
	if err != nil {
		return 0, fmt.Errorf("invalid buffer_size %q: %w", c.BufferSize, err)
	}
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("buffer_size %q is too large", c.BufferSize)
	}
	return int(v), nil
}

// MinHoleSizeBytes parses the configured minimum hole size. Zero keeps
// every zero run sparse.
func (c *Config) MinHoleSizeBytes() (int64, error) {
	if c.MinHoleSize == "" {
		return 0, nil
	}
	v, err := humanize.ParseBytes(c.MinHoleSize)
	if err != nil {
		return 0, fmt.Errorf("invalid min_hole_size %q: %w", c.MinHoleSize, err)
	}
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("min_hole_size %q is too large", c.MinHoleSize)
	}
	return int64(v), nil
}
