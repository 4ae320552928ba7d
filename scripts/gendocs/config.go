package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapcube/internal/config"
)

// ConfigField represents a leapcube.yaml field.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "project", "advisories"
}

// getConfigSchema returns the leapcube.yaml fields.
// Keep in sync with core.ProjectConfig and the CLI config.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		{Name: "cubes_dir", Type: "string", Default: config.DefaultCubesDir, Description: "Directory scanned recursively for cube definitions", Category: "project"},
		{Name: "views_dir", Type: "string", Default: config.DefaultViewsDir, Description: "Directory scanned recursively for view definitions", Category: "project"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Enable debug logging", Category: "project"},
		{Name: "output", Type: "string", Default: "auto", Description: "Output format: auto, text, markdown, json", Category: "project"},

		{Name: "disabled", Type: "[]string", Description: "Advisory rule IDs to skip", Category: "advisories"},
		{Name: "severity", Type: "map[string]string", Description: "Severity override per rule ID (error, warning, info, hint)", Category: "advisories"},
	}
}

func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := generateConfigurationDoc(outDir); err != nil {
		return fmt.Errorf("failed to generate configuration.md: %w", err)
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// generateConfigurationDoc generates the configuration reference page.
func generateConfigurationDoc(outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "leapcube configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("leapcube is configured via `leapcube.yaml` in your project root. " +
		"Relative directories are resolved against the directory holding the file.")

	fields := getConfigSchema()

	w.Header(2, "Project Settings")
	var projectRows [][]string
	for _, f := range fields {
		if f.Category != "project" {
			continue
		}
		defVal := f.Default
		if defVal == "" {
			defVal = "-"
		}
		projectRows = append(projectRows, []string{InlineCode(f.Name), f.Type, InlineCode(defVal), f.Description})
	}
	w.Table([]string{"Field", "Type", "Default", "Description"}, projectRows)

	w.Header(2, "Advisories")
	w.Paragraph("Advisory rules are configured under the `advisories` key. " +
		"Advisories never fail validation, whatever their severity.")
	var advisoryRows [][]string
	for _, f := range fields {
		if f.Category == "advisories" {
			advisoryRows = append(advisoryRows, []string{InlineCode("advisories." + f.Name), f.Type, f.Description})
		}
	}
	w.Table([]string{"Field", "Type", "Description"}, advisoryRows)

	w.Header(2, "Full Configuration Example")
	w.CodeBlock("yaml", `# leapcube.yaml
cubes_dir: model/cubes
views_dir: model/views

advisories:
  disabled:
    - AD03
  severity:
    AD02: error`)

	w.Header(2, "Environment Variables")
	w.Paragraph("Every field can be set through a `LEAPCUBE_` environment variable, e.g. `LEAPCUBE_CUBES_DIR`. " +
		"Environment variables override the file; command-line flags override both.")

	return os.WriteFile(filepath.Join(outDir, "configuration.md"), w.Bytes(), 0600)
}
