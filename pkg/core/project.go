package core

// ProjectConfig holds project-level configuration shared by the CLI and
// library callers.
type ProjectConfig struct {
	CubesDir   string          `koanf:"cubes_dir"`
	ViewsDir   string          `koanf:"views_dir"`
	Advisories *AdvisoryConfig `koanf:"advisories"`
}

// AdvisoryConfig holds advisory rule configuration.
type AdvisoryConfig struct {
	// Disabled contains rule IDs to disable
	Disabled []string `koanf:"disabled"`

	// Severity maps rule ID to severity override (error, warning, info, hint)
	Severity map[string]string `koanf:"severity"`
}

// IsDisabled reports whether the rule ID is listed in Disabled.
func (c *AdvisoryConfig) IsDisabled(id string) bool {
	if c == nil {
		return false
	}
	for _, d := range c.Disabled {
		if d == id {
			return true
		}
	}
	return false
}
