// Package config provides configuration management for the leapcube CLI.
//
// This package extends the shared project configuration from pkg/core with
// CLI-specific fields. The shared types are re-exported here via type
// aliases for convenience.
package config

import (
	sharedcfg "github.com/leapstack-labs/leapcube/internal/config"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

// AdvisoryConfig is an alias for the shared advisory configuration.
// This allows CLI code to use config.AdvisoryConfig without importing pkg/core.
type AdvisoryConfig = core.AdvisoryConfig

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot is the directory relative paths resolve against. It is
	// never read from configuration sources.
	ProjectRoot string `koanf:"-"`

	CubesDir     string          `koanf:"cubes_dir"`
	ViewsDir     string          `koanf:"views_dir"`
	Verbose      bool            `koanf:"verbose"`
	OutputFormat string          `koanf:"output"`
	Advisories   *AdvisoryConfig `koanf:"advisories"`
}

// Project returns the shared project configuration view of c.
func (c *Config) Project() *core.ProjectConfig {
	return &core.ProjectConfig{
		CubesDir:   c.CubesDir,
		ViewsDir:   c.ViewsDir,
		Advisories: c.Advisories,
	}
}

// Default configuration values - uses shared defaults from internal/config
const (
	DefaultCubesDir = sharedcfg.DefaultCubesDir
	DefaultViewsDir = sharedcfg.DefaultViewsDir
	DefaultOutput   = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// DefaultConfig returns the configuration used when nothing was loaded.
func DefaultConfig() *Config {
	return &Config{
		CubesDir:     DefaultCubesDir,
		ViewsDir:     DefaultViewsDir,
		OutputFormat: DefaultOutput,
	}
}
