package config

import "github.com/leapstack-labs/leapcube/pkg/core"

// Default configuration values.
const (
	DefaultCubesDir = "cubes"
	DefaultViewsDir = "views"
)

// ApplyDefaults applies default values to a ProjectConfig.
func ApplyDefaults(c *core.ProjectConfig) {
	if c == nil {
		return
	}
	if c.CubesDir == "" {
		c.CubesDir = DefaultCubesDir
	}
	if c.ViewsDir == "" {
		c.ViewsDir = DefaultViewsDir
	}
}
