package core

import (
	"fmt"
	"io"
	"strings"
)

// =============================================================================
// Issue
// =============================================================================

// IssueKind classifies a validation finding by the stage that produced it.
type IssueKind string

// Issue kinds, in pipeline order.
const (
	// KindParse is malformed YAML syntax in one file.
	KindParse IssueKind = "parse"
	// KindSchema is a value that violates the cube/view grammar.
	KindSchema IssueKind = "schema"
	// KindDuplicateName is a cube or view name defined more than once in the project.
	KindDuplicateName IssueKind = "duplicate_name"
	// KindCompositionConflict is two view members resolving to the same final name.
	KindCompositionConflict IssueKind = "composition_conflict"
)

// IssueKinds lists every issue kind in pipeline order.
var IssueKinds = []IssueKind{KindParse, KindSchema, KindDuplicateName, KindCompositionConflict}

// Issue is a single blocking validation finding.
//
// Path holds the location inside the document as individual segments
// (e.g. ["cubes", "0", "measures", "1", "type"]). Entity is the name of the
// nearest enclosing named cube, view or member, when one could be resolved.
type Issue struct {
	Kind    IssueKind `json:"kind"`
	File    string    `json:"file"`
	Path    []string  `json:"path,omitempty"`
	Entity  string    `json:"entity,omitempty"`
	Line    int       `json:"line,omitempty"`
	Message string    `json:"message"`
}

// DottedPath joins the path segments with dots.
func (i Issue) DottedPath() string {
	return strings.Join(i.Path, ".")
}

// Error implements the error interface using the default text rendering.
func (i Issue) Error() string {
	return FormatIssue(i)
}

// FormatIssue renders an issue as
//
//	<file>: <dotted-path>[ (<entity>)] — <message>
//
// When the issue has no path the location part is dropped entirely.
func FormatIssue(i Issue) string {
	location := i.DottedPath()
	if location != "" && i.Entity != "" {
		location += " (" + i.Entity + ")"
	}
	if location == "" {
		return fmt.Sprintf("%s: %s", i.File, i.Message)
	}
	return fmt.Sprintf("%s: %s — %s", i.File, location, i.Message)
}

// IssueFormatter renders issues for presentation.
type IssueFormatter interface {
	Format(w io.Writer, issues []Issue) error
}

// TextFormatter writes one FormatIssue line per issue.
type TextFormatter struct {
	// Prefix is written before every line, e.g. "  • ".
	Prefix string
}

// Format implements IssueFormatter.
func (f TextFormatter) Format(w io.Writer, issues []Issue) error {
	for _, i := range issues {
		if _, err := fmt.Fprintf(w, "%s%s\n", f.Prefix, FormatIssue(i)); err != nil {
			return err
		}
	}
	return nil
}

// RenderIssues renders every issue with FormatIssue, preserving order.
func RenderIssues(issues []Issue) []string {
	out := make([]string, len(issues))
	for idx, i := range issues {
		out[idx] = FormatIssue(i)
	}
	return out
}

// CountByKind tallies issues per kind.
func CountByKind(issues []Issue) map[IssueKind]int {
	counts := make(map[IssueKind]int)
	for _, i := range issues {
		counts[i.Kind]++
	}
	return counts
}
