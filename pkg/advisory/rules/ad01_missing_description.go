package advisoryrules

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/advisory"
	"github.com/leapstack-labs/leapcube/pkg/core"
)

func init() {
	advisory.Register(advisory.RuleDef{
		ID:          "AD01",
		Name:        "missing-description",
		Group:       "documentation",
		Description: "Cubes, views, measures and dimensions without a description",
		Severity:    core.SeverityInfo,
		Check:       checkMissingDescriptions,

		Rationale: `Descriptions are what consumers of the semantic layer see when they browse members.
An undocumented member forces readers back to the SQL to learn what it means.`,

		Fix: "Add a description to the cube, view or member.",
	})
}

// checkMissingDescriptions reports, per file, each cube followed by its
// measures and dimensions, then each view. An empty description counts as
// missing.
func checkMissingDescriptions(ctx *advisory.Context) []advisory.Diagnostic {
	var diagnostics []advisory.Diagnostic
	report := func(file string, line int, parent string, typ advisory.EntityType, name string) {
		subject := name
		if parent != name {
			subject = parent + "." + name
		}
		diagnostics = append(diagnostics, advisory.Diagnostic{
			RuleID:   "AD01",
			Severity: core.SeverityInfo,
			Message:  fmt.Sprintf("%s '%s' has no description", typ, subject),
			File:     file,
			Line:     line,
			MissingDescription: &advisory.MissingDescription{
				Parent: parent,
				Type:   typ,
				Name:   name,
			},
		})
	}

	for _, doc := range ctx.Documents() {
		for _, cube := range doc.Cubes {
			if cube.Description == "" {
				report(doc.File, cube.Line, cube.Name, advisory.EntityCube, cube.Name)
			}
			for _, m := range cube.Measures {
				if m.Description == "" {
					report(doc.File, cube.Line, cube.Name, advisory.EntityMeasure, m.Name)
				}
			}
			for _, d := range cube.Dimensions {
				if d.Description == "" {
					report(doc.File, cube.Line, cube.Name, advisory.EntityDimension, d.Name)
				}
			}
		}
		for _, view := range doc.Views {
			if view.Description == "" {
				report(doc.File, view.Line, view.Name, advisory.EntityView, view.Name)
			}
		}
	}

	return diagnostics
}
