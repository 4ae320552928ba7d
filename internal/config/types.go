// Package config provides shared project configuration loading for leapcube.
// This package is decoupled from CLI concerns so that the file watcher and
// other long-running tools can reload project configuration on their own.
package config

import "github.com/leapstack-labs/leapcube/pkg/core"

// ProjectConfig is an alias for the shared project configuration.
type ProjectConfig = core.ProjectConfig

// AdvisoryConfig is an alias for the shared advisory configuration.
type AdvisoryConfig = core.AdvisoryConfig
