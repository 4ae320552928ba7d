package advisoryrules

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/advisory"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/schema"
)

func init() {
	advisory.Register(advisory.RuleDef{
		ID:          "AD03",
		Name:        "time-primary-key",
		Group:       "modeling",
		Description: "Primary key dimensions of type time",
		Severity:    core.SeverityWarning,
		Check:       checkTimePrimaryKeys,

		Rationale: `Timestamps are rarely unique. A time primary key makes row-level dimension queries
collapse rows and return incomplete or empty results.`,

		Fix: "Mark a unique identifier column as primary_key instead of the time dimension.",
	})
}

func checkTimePrimaryKeys(ctx *advisory.Context) []advisory.Diagnostic {
	var diagnostics []advisory.Diagnostic

	ctx.EachCube(func(file string, cube *schema.Cube) {
		for _, d := range cube.Dimensions {
			if !d.PrimaryKey || d.Type != schema.DimensionTime {
				continue
			}
			diagnostics = append(diagnostics, advisory.Diagnostic{
				RuleID:   "AD03",
				Severity: core.SeverityWarning,
				Message:  fmt.Sprintf("dimension '%s.%s' is a primary key of type %s", cube.Name, d.Name, d.Type),
				File:     file,
				Line:     cube.Line,
				SuspectPrimaryKey: &advisory.SuspectPrimaryKey{
					Cube:      cube.Name,
					Dimension: d.Name,
					Type:      string(d.Type),
				},
			})
		}
	})

	return diagnostics
}
