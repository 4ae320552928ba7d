package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/leapcube/internal/cli/config"
	"github.com/leapstack-labs/leapcube/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapcube/internal/config"
	"github.com/leapstack-labs/leapcube/internal/project"
	"github.com/leapstack-labs/leapcube/internal/watch"
	"github.com/leapstack-labs/leapcube/pkg/advisory"
	"github.com/leapstack-labs/leapcube/pkg/core"
	"github.com/leapstack-labs/leapcube/pkg/validate"
	"github.com/spf13/cobra"
)

// ValidateOptions holds options for the validate command.
type ValidateOptions struct {
	Watch  bool
	Format string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}
	cmd := &cobra.Command{
		Use:   "validate [directory]",
		Short: "Validate cube and view definitions",
		Long: `Validate every cube and view definition of the project.

Files are parsed and checked against the schema one by one. Names are then
checked for duplicates across the project, and views are composed from the
cubes they reference. Advisories (missing descriptions, cubes without a
data_source, primary keys on time dimensions) are reported for projects that
pass validation.

When a directory is given, its own leapcube.yaml is used instead of the
current project configuration.`,
		Example: `  # Validate the current project
  leapcube validate

  # Validate another project
  leapcube validate ../analytics

  # Re-validate whenever a definition changes
  leapcube validate --watch

  # Machine-readable result
  leapcube validate -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Re-validate when definitions or configuration change")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	cmdCtx.WithFormat(cmd, opts.Format)

	if len(args) > 0 {
		if err := cmdCtx.openProject(args[0]); err != nil {
			return err
		}
	}

	if opts.Watch {
		return watchValidate(cmd, cmdCtx, len(args) > 0)
	}

	result, err := cmdCtx.Validator.ValidateProject(cmd.Context(), cmdCtx.Layout)
	if err != nil {
		return err
	}
	if err := renderValidation(cmdCtx.Renderer, cmdCtx.Layout, result); err != nil {
		return err
	}
	if !result.Valid {
		return ErrValidationFailed
	}
	return nil
}

// openProject points the context at the project in dir, using the
// configuration file found there.
func (c *CommandContext) openProject(dir string) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	layout, projectCfg, err := project.Open(root)
	if err != nil {
		return err
	}
	advisories, err := advisory.ConfigFromProject(projectCfg.Advisories)
	if err != nil {
		return err
	}
	c.Layout = layout
	c.Validator = validate.New(validate.Config{Logger: c.Logger, Advisories: advisories})
	return nil
}

// reload rebuilds the layout and validator after a configuration change.
func (c *CommandContext) reload(cmd *cobra.Command, explicitDir bool) error {
	if explicitDir {
		return c.openProject(c.Layout.Root)
	}
	cfg, err := config.LoadConfig(config.GetConfigFileUsed(), cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	v, err := newValidator(cfg, c.Logger)
	if err != nil {
		return err
	}
	c.Cfg = cfg
	c.Layout = project.NewLayout(cfg.ProjectRoot, cfg.Project())
	c.Validator = v
	return nil
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range intconfig.ConfigFileNames {
		if base == name {
			return true
		}
	}
	return false
}

func watchValidate(cmd *cobra.Command, cmdCtx *CommandContext, explicitDir bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	r := cmdCtx.Renderer

	runOnce := func() {
		result, err := cmdCtx.Validator.ValidateProject(ctx, cmdCtx.Layout)
		if err != nil {
			r.Error(err.Error())
			return
		}
		if err := renderValidation(r, cmdCtx.Layout, result); err != nil {
			r.Error(err.Error())
		}
	}
	runOnce()

	w, err := watch.New(cmdCtx.Layout.Dirs(), watch.Options{
		Match: func(path string) bool {
			return project.IsDefinitionFile(path) || isConfigFile(path)
		},
		Logger: cmdCtx.Logger,
	})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()

	if err := w.AddDir(cmdCtx.Layout.Root); err != nil {
		return err
	}

	r.Println("")
	r.Println(r.Styles().Muted.Render("Watching for changes. Press Ctrl+C to stop."))

	err = w.Run(ctx, func(paths []string) {
		configChanged := false
		for _, p := range paths {
			if isConfigFile(p) {
				configChanged = true
				break
			}
		}
		if configChanged {
			if err := cmdCtx.reload(cmd, explicitDir); err != nil {
				r.Error(fmt.Sprintf("failed to reload configuration: %v", err))
				return
			}
			cmdCtx.Logger.Info("configuration reloaded")
		}

		r.Println("")
		r.Println(r.Styles().Muted.Render("Change detected: " + relativeNames(cmdCtx.Layout.Root, paths)))
		runOnce()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func relativeNames(root string, paths []string) string {
	names := make([]string, len(paths))
	for i, p := range paths {
		if rel, err := filepath.Rel(root, p); err == nil {
			p = rel
		}
		names[i] = filepath.ToSlash(p)
	}
	return strings.Join(names, ", ")
}

// =============================================================================
// Rendering
// =============================================================================

func renderValidation(r *output.Renderer, layout project.Layout, result *validate.Result) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(result)
	case output.ModeMarkdown:
		renderValidationMarkdown(r, layout, result)
	default:
		renderValidationText(r, layout, result)
	}
	return nil
}

func isEmptyProject(result *validate.Result) bool {
	return result.Valid && len(result.Cubes) == 0 && len(result.Views) == 0
}

func displayDir(root, dir string) string {
	if rel, err := filepath.Rel(root, dir); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel) + "/"
	}
	return dir
}

// groupMissingDescriptions groups missing descriptions by parent, in first
// appearance order. Cubes and views themselves are labelled by type.
func groupMissingDescriptions(items []advisory.MissingDescription) (parents []string, byParent map[string][]string) {
	byParent = make(map[string][]string)
	for _, m := range items {
		label := m.Name
		if m.Type == advisory.EntityCube || m.Type == advisory.EntityView {
			label = "(" + string(m.Type) + ")"
		}
		if _, ok := byParent[m.Parent]; !ok {
			parents = append(parents, m.Parent)
		}
		byParent[m.Parent] = append(byParent[m.Parent], label)
	}
	return parents, byParent
}

func renderValidationText(r *output.Renderer, layout project.Layout, result *validate.Result) {
	styles := r.Styles()

	if isEmptyProject(result) {
		r.Warning(fmt.Sprintf("No cube or view files found in %s or %s.",
			displayDir(layout.Root, layout.CubesDir), displayDir(layout.Root, layout.ViewsDir)))
		return
	}

	if !result.Valid {
		r.Println(styles.Error.Render("Validation failed:"))
		r.Println("")
		for _, e := range result.Errors {
			r.Println(styles.Error.Render("  • " + e))
		}
		return
	}

	r.Success("Validation passed.")
	r.Println("")
	if len(result.Cubes) > 0 {
		r.Printf("  %s  (%d): %s\n", styles.Muted.Render("Cubes"), len(result.Cubes), strings.Join(result.Cubes, ", "))
	}
	if len(result.Views) > 0 {
		r.Printf("  %s  (%d): %s\n", styles.Muted.Render("Views"), len(result.Views), strings.Join(result.Views, ", "))
	}

	if len(result.MissingDescriptions) > 0 {
		r.Println("")
		r.Println(styles.Warning.Render(fmt.Sprintf("⚠ %d items missing descriptions", len(result.MissingDescriptions))))
		r.Println(styles.Muted.Render("  Descriptions help AI agents and analysts discover the right metrics."))
		parents, byParent := groupMissingDescriptions(result.MissingDescriptions)
		for _, parent := range parents {
			r.Println(styles.Muted.Render(fmt.Sprintf("  %s: %s", parent, strings.Join(byParent[parent], ", "))))
		}
	}

	if len(result.CubesMissingDataSource) > 0 {
		r.Println("")
		r.Println(styles.Warning.Render(fmt.Sprintf("⚠ %d cube(s) missing data_source", len(result.CubesMissingDataSource))))
		r.Println(styles.Muted.Render("  Without an explicit data_source, cubes use the default warehouse."))
		r.Println(styles.Muted.Render("  This can cause issues when multiple warehouses are configured."))
		r.Println(styles.Muted.Render("  " + strings.Join(result.CubesMissingDataSource, ", ")))
	}

	if len(result.SuspectPrimaryKeys) > 0 {
		r.Println("")
		r.Println(styles.Warning.Render(fmt.Sprintf("⚠ %d primary key(s) on time dimensions", len(result.SuspectPrimaryKeys))))
		r.Println(styles.Muted.Render("  Time dimensions are rarely unique. Non-unique primary keys cause dimension"))
		r.Println(styles.Muted.Render("  queries to silently return empty results. Use a unique column or add a"))
		r.Println(styles.Muted.Render("  ROW_NUMBER() synthetic key via the cube's sql property."))
		for _, s := range result.SuspectPrimaryKeys {
			r.Println(styles.Muted.Render(fmt.Sprintf("  %s.%s (type: %s)", s.Cube, s.Dimension, s.Type)))
		}
	}
}

func renderValidationMarkdown(r *output.Renderer, layout project.Layout, result *validate.Result) {
	r.Println(output.FormatHeader(1, "Validation"))
	r.Println("")

	if isEmptyProject(result) {
		r.Printf("No cube or view files found in `%s` or `%s`.\n",
			displayDir(layout.Root, layout.CubesDir), displayDir(layout.Root, layout.ViewsDir))
		return
	}

	if !result.Valid {
		r.Println(output.FormatKeyValue("Status", "failed"))
		r.Println(output.FormatKeyValue("Errors", fmt.Sprintf("%d", len(result.Errors))))
		counts := core.CountByKind(result.Issues)
		for _, kind := range core.IssueKinds {
			if n := counts[kind]; n > 0 {
				r.Println(output.FormatKeyValue(string(kind), fmt.Sprintf("%d", n)))
			}
		}
		r.Println("")
		r.Println(output.FormatHeader(2, "Errors"))
		r.Println("")
		_ = core.TextFormatter{Prefix: "- "}.Format(r.Writer(), result.Issues)
		return
	}

	r.Println(output.FormatKeyValue("Status", "passed"))
	r.Println(output.FormatKeyValue("Cubes", fmt.Sprintf("%d", len(result.Cubes))))
	r.Println(output.FormatKeyValue("Views", fmt.Sprintf("%d", len(result.Views))))

	if len(result.MissingDescriptions) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Missing Descriptions"))
		r.Println("")
		parents, byParent := groupMissingDescriptions(result.MissingDescriptions)
		for _, parent := range parents {
			r.Printf("- %s: %s\n", parent, strings.Join(byParent[parent], ", "))
		}
	}

	if len(result.CubesMissingDataSource) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Cubes Missing data_source"))
		r.Println("")
		for _, c := range result.CubesMissingDataSource {
			r.Printf("- %s\n", c)
		}
	}

	if len(result.SuspectPrimaryKeys) > 0 {
		r.Println("")
		r.Println(output.FormatHeader(2, "Primary Keys on Time Dimensions"))
		r.Println("")
		for _, s := range result.SuspectPrimaryKeys {
			r.Printf("- %s.%s (type: %s)\n", s.Cube, s.Dimension, s.Type)
		}
	}
}
