package advisory

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/core"
)

// Analyzer runs advisory rules against a project context.
type Analyzer struct {
	config        *AnalyzerConfig
	disabledRules map[string]bool
}

// AnalyzerConfig holds configuration for the advisory analyzer.
type AnalyzerConfig struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity
}

// NewAnalyzerConfig creates a default configuration.
func NewAnalyzerConfig() *AnalyzerConfig {
	return &AnalyzerConfig{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
	}
}

// ConfigFromProject converts the advisories section of the project config.
// Unknown severity names are an error; unknown rule IDs are kept so that
// rules registered later still see their settings.
func ConfigFromProject(cfg *core.AdvisoryConfig) (*AnalyzerConfig, error) {
	config := NewAnalyzerConfig()
	if cfg == nil {
		return config, nil
	}
	for _, id := range cfg.Disabled {
		config.DisabledRules[id] = true
	}
	for id, name := range cfg.Severity {
		sev, ok := core.ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("advisories.severity.%s: unknown severity %q", id, name)
		}
		config.SeverityOverrides[id] = sev
	}
	return config, nil
}

// NewAnalyzer creates a new advisory analyzer with optional configuration.
func NewAnalyzer(config *AnalyzerConfig) *Analyzer {
	if config == nil {
		config = NewAnalyzerConfig()
	}
	if config.DisabledRules == nil {
		config.DisabledRules = make(map[string]bool)
	}
	return &Analyzer{
		config:        config,
		disabledRules: config.DisabledRules,
	}
}

// Analyze runs all registered rules against the context, in rule ID order.
func (a *Analyzer) Analyze(ctx *Context) []Diagnostic {
	if ctx == nil {
		return nil
	}

	var diagnostics []Diagnostic
	for _, rule := range GetAll() {
		if a.isDisabled(rule.ID) {
			continue
		}

		diags := rule.Check(ctx)
		for i := range diags {
			diags[i].Severity = a.getSeverity(rule.ID, diags[i].Severity)
		}
		diagnostics = append(diagnostics, diags...)
	}

	return diagnostics
}

func (a *Analyzer) isDisabled(ruleID string) bool {
	return a.disabledRules[ruleID]
}

func (a *Analyzer) getSeverity(ruleID string, defaultSev core.Severity) core.Severity {
	if sev, ok := a.config.SeverityOverrides[ruleID]; ok {
		return sev
	}
	return defaultSev
}
