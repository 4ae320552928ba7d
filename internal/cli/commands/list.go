package commands

import (
	"fmt"
	"strconv"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/pkg/validate"
	"github.com/spf13/cobra"
)

// ListEntry describes one cube or view in list output.
type ListEntry struct {
	Kind       string `json:"kind"`
	Name       string `json:"name"`
	File       string `json:"file"`
	Line       int    `json:"line"`
	DataSource string `json:"data_source,omitempty"`
	Measures   int    `json:"measures"`
	Dimensions int    `json:"dimensions"`
	Segments   int    `json:"segments"`
	// Members counts the composed members of a view.
	Members int `json:"members,omitempty"`
}

// ListOutput is the JSON output of the list command.
type ListOutput struct {
	Valid   bool        `json:"valid"`
	Entries []ListEntry `json:"entries"`
}

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cubes and views",
		Long: `List every cube and view of the project with its file and member counts.

Views of a valid project also show how many members they expose once their
cube references are composed.

Output adapts to environment:
  - Terminal: table
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List cubes and views
  leapcube list

  # List as JSON
  leapcube list --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	result, err := cmdCtx.Validator.ValidateProject(cmd.Context(), cmdCtx.Layout)
	if err != nil {
		return err
	}

	out := ListOutput{Valid: result.Valid, Entries: listEntries(result)}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(out)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Cubes and Views (%d total)", len(out.Entries))))
		r.Println("")
		renderMarkdownTable(r.Writer(), listTable(out.Entries))
	default:
		r.Header(1, fmt.Sprintf("Cubes and Views (%d total)", len(out.Entries)))
		renderTable(r.Writer(), listTable(out.Entries))
	}

	if !result.Valid {
		r.Warning(fmt.Sprintf("project has %d validation error(s); run 'leapcube validate' for details", len(result.Errors)))
	}
	return nil
}

// listEntries returns cubes then views, in project order, from the
// documents that parsed.
func listEntries(result *validate.Result) []ListEntry {
	members := make(map[string]int)
	for _, rv := range result.Resolved {
		members[viewKey(rv.File, rv.View)] = len(rv.Members)
	}

	entries := []ListEntry{}
	for _, doc := range result.Documents {
		for i := range doc.Cubes {
			c := &doc.Cubes[i]
			entries = append(entries, ListEntry{
				Kind:       "cube",
				Name:       c.Name,
				File:       doc.File,
				Line:       c.Line,
				DataSource: c.DataSource,
				Measures:   len(c.Measures),
				Dimensions: len(c.Dimensions),
				Segments:   len(c.Segments),
			})
		}
	}
	for _, doc := range result.Documents {
		for i := range doc.Views {
			v := &doc.Views[i]
			entries = append(entries, ListEntry{
				Kind:       "view",
				Name:       v.Name,
				File:       doc.File,
				Line:       v.Line,
				Measures:   len(v.Measures),
				Dimensions: len(v.Dimensions),
				Segments:   len(v.Segments),
				Members:    members[viewKey(doc.File, v.Name)],
			})
		}
	}
	return entries
}

func viewKey(file, view string) string {
	return file + "\x00" + view
}

func listTable(entries []ListEntry) tabular {
	t := tabular{cols: []string{"Kind", "Name", "File", "Measures", "Dimensions", "Segments", "Members"}}
	for _, e := range entries {
		membersCol := "-"
		if e.Kind == "view" && e.Members > 0 {
			membersCol = strconv.Itoa(e.Members)
		}
		t.append(e.Kind, e.Name, fmt.Sprintf("%s:%d", e.File, e.Line),
			strconv.Itoa(e.Measures), strconv.Itoa(e.Dimensions), strconv.Itoa(e.Segments), membersCol)
	}
	return t
}
