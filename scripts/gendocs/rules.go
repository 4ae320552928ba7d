package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcube/pkg/advisory"
	_ "github.com/leapstack-labs/leapcube/pkg/advisory/rules" // registers AD* rules
)

var ruleGroupDescriptions = map[string]string{
	"documentation": "Rules about descriptions that help analysts and agents discover the right members.",
	"modeling":      "Rules about modeling choices that silently change query results.",
}

// generateRuleDocs generates the advisory rules reference.
func generateRuleDocs(outDir string) error {
	log.Printf("Generating advisory docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := advisory.GetAll()

	w := NewMarkdownWriter()
	w.Frontmatter("Advisories", "Non-blocking advisory rules for leapcube projects")
	w.GeneratedMarker()

	w.Header(1, "Advisories")
	w.Paragraph(fmt.Sprintf("leapcube runs **%d advisory rules** over projects that pass validation. "+
		"Advisories are reported but never make a project invalid.", len(rules)))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Very likely a modeling mistake"},
			{InlineCode("warning"), "Potential issue that should be reviewed"},
			{InlineCode("info"), "Informational feedback"},
			{InlineCode("hint"), "Suggestion for improvement"},
		},
	)

	var summary [][]string
	for _, r := range rules {
		summary = append(summary, []string{
			fmt.Sprintf("[%s](#%s)", r.ID, r.ID), r.Name, r.Group, InlineCode(r.Severity.String()),
		})
	}
	w.Header(2, "Rules")
	w.Table([]string{"ID", "Name", "Group", "Default Severity"}, summary)

	groups, byGroup := groupRules(rules)
	for _, group := range groups {
		w.Line(fmt.Sprintf("## %s {#%s}", capitalizeFirst(group), group))
		w.Newline()
		if desc, ok := ruleGroupDescriptions[group]; ok {
			w.Paragraph(desc)
		}
		for _, r := range byGroup[group] {
			writeRuleDoc(w, r)
		}
	}

	if err := os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated index.md")
	return nil
}

// groupRules groups rules in order of first appearance. Rules keep their
// registry order (by ID) within a group.
func groupRules(rules []advisory.RuleDef) ([]string, map[string][]advisory.RuleDef) {
	var groups []string
	byGroup := make(map[string][]advisory.RuleDef)
	for _, r := range rules {
		if _, ok := byGroup[r.Group]; !ok {
			groups = append(groups, r.Group)
		}
		byGroup[r.Group] = append(byGroup[r.Group], r)
	}
	return groups, byGroup
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule advisory.RuleDef) {
	// ### AD01 - missing-description {#AD01}
	w.Line(fmt.Sprintf("### %s - %s {#%s}", rule.ID, rule.Name, rule.ID))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.Severity.String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description))

	if rationale := rule.Rationale; rationale != "" {
		w.Header(4, "Why This Matters")
		w.Paragraph(strings.TrimSpace(rationale))
	}

	if fix := rule.Fix; fix != "" {
		w.Header(4, "How to Fix")
		w.Paragraph(strings.TrimSpace(fix))
	}

	w.Header(4, "Configuration")
	w.CodeBlock("yaml", fmt.Sprintf("advisories:\n  disabled: [%s]\n  severity:\n    %s: error", rule.ID, rule.ID))

	w.Line("---")
	w.Newline()
}
