package advisoryrules

import (
	"fmt"

	"github.com/leapstack-labs/leapcube/pkg/advisory"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/schema"
)

func init() {
	advisory.Register(advisory.RuleDef{
		ID:          "AD02",
		Name:        "missing-data-source",
		Group:       "modeling",
		Description: "Cubes that rely on the project default data source",
		Severity:    core.SeverityWarning,
		Check:       checkMissingDataSource,

		Rationale: `A cube without data_source is queried against the project default. With more than one
warehouse configured this silently routes queries to the wrong place.`,

		Fix: "Set data_source on the cube explicitly.",
	})
}

func checkMissingDataSource(ctx *advisory.Context) []advisory.Diagnostic {
	var diagnostics []advisory.Diagnostic

	ctx.EachCube(func(file string, cube *schema.Cube) {
		if cube.DataSource != "" {
			return
		}
		diagnostics = append(diagnostics, advisory.Diagnostic{
			RuleID:                "AD02",
			Severity:              core.SeverityWarning,
			Message:               fmt.Sprintf("cube '%s' has no data_source and uses the default", cube.Name),
			File:                  file,
			Line:                  cube.Line,
			CubeWithoutDataSource: cube.Name,
		})
	})

	return diagnostics
}
