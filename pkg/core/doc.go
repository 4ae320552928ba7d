// Package core defines the shared language of the leapcube validator.
//
// This package contains:
//   - The validation finding taxonomy (Issue, IssueKind) and its text rendering
//   - Advisory severities and rule metadata (Severity, RuleInfo)
//   - Configuration types shared by the CLI and library callers (ProjectConfig)
//
// The Golden Rule: pkg/core imports ONLY the standard library.
// All other packages depend on core, not the reverse.
package core
