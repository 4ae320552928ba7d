package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/pkg/validate"
	"github.com/spf13/cobra"
)

// DataSourcesOutput is the JSON output of the datasources command.
type DataSourcesOutput struct {
	DataSources []validate.DataSourceRef `json:"data_sources"`
	// DefaultCubes lists cubes without an explicit data_source.
	DefaultCubes []string `json:"default_cubes"`
}

// NewDataSourcesCommand creates the datasources command.
func NewDataSourcesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "datasources",
		Aliases: []string{"ds"},
		Short:   "List data sources referenced by cubes",
		Long: `List every data_source named by a cube, in first-use order, with the
cubes that use it. Cubes without a data_source use the default warehouse and
are listed separately.`,
		Example: `  # List referenced data sources
  leapcube datasources

  # As JSON
  leapcube datasources -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDataSources(cmd)
		},
	}
	return cmd
}

func runDataSources(cmd *cobra.Command) error {
	cmdCtx := NewCommandContextWithoutValidator(cmd)
	r := cmdCtx.Renderer

	// Data sources only need parsed documents, so advisories stay off.
	result, err := validate.New(validate.Config{Logger: cmdCtx.Logger}).ValidateProject(cmd.Context(), cmdCtx.Layout)
	if err != nil {
		return err
	}

	out := DataSourcesOutput{
		DataSources:  validate.DataSources(result.Documents),
		DefaultCubes: []string{},
	}
	for _, doc := range result.Documents {
		for _, c := range doc.Cubes {
			if c.DataSource == "" || c.DataSource == validate.DefaultDataSource {
				out.DefaultCubes = append(out.DefaultCubes, c.Name)
			}
		}
	}

	t := tabular{cols: []string{"Data Source", "Cubes"}}
	for _, ds := range out.DataSources {
		t.append(ds.Name, strings.Join(ds.Cubes, ", "))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Data Sources (%d)", len(out.DataSources))))
		r.Println("")
		renderMarkdownTable(r.Writer(), t)
		if len(out.DefaultCubes) > 0 {
			r.Println("")
			r.Println(output.FormatKeyValue("Default", strings.Join(out.DefaultCubes, ", ")))
		}
	default:
		r.Header(1, fmt.Sprintf("Data Sources (%d)", len(out.DataSources)))
		renderTable(r.Writer(), t)
		if len(out.DefaultCubes) > 0 {
			r.Println(r.Styles().Muted.Render("Using the default data source: " + strings.Join(out.DefaultCubes, ", ")))
		}
	}

	if !result.Valid {
		r.Warning(fmt.Sprintf("project has %d validation error(s); run 'leapcube validate' for details", len(result.Errors)))
	}
	return nil
}
