package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/leapcube/internal/cli/output"
	intconfig "github.com/leapstack-labs/leapcube/internal/config"
	"github.com/spf13/cobra"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new leapcube project",
		Long: `Initialize a new leapcube project with default directory structure and configuration.

This creates:
  - cubes/ directory with an orders cube
  - views/ directory with a sales view
  - leapcube.yaml configuration file

Use --example to create a larger project with joins, segments,
pre-aggregations and a view composed from two cubes.`,
		Example: `  # Initialize in current directory
  leapcube init

  # Initialize with a full example
  leapcube init --example

  # Initialize in a new directory
  leapcube init my-project

  # Force overwrite existing files
  leapcube init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.OutputFormat))

			if example {
				return runInitExample(r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	cmd.Flags().BoolVar(&example, "example", false, "Create a full example project")

	return cmd
}

// prepareInitDir creates dir and refuses to overwrite an existing
// configuration unless force is set.
func prepareInitDir(dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if existing := intconfig.FindConfigFile(dir); existing != "" && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", filepath.Base(existing))
	}
	return nil
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if err := prepareInitDir(dir, force); err != nil {
		return err
	}

	files, err := copyTemplate("minimal", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}
	reportScaffolded(r, files)

	r.Println("")
	r.Success("leapcube project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Describe your tables as cubes in cubes/")
	r.Println("  2. Compose cubes into views in views/")
	r.Println("  3. Run 'leapcube validate' to check the definitions")
	r.Println("  4. Run 'leapcube list' to see all cubes and views")

	return nil
}

func runInitExample(r *output.Renderer, dir string, force bool) error {
	if err := prepareInitDir(dir, force); err != nil {
		return err
	}

	files, err := copyTemplate("example", dir, force)
	if err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	groups := groupTemplateFiles(files)
	for i, section := range []struct{ key, title string }{
		{"config", "Configuration"},
		{"cubes", "Cubes"},
		{"views", "Views"},
	} {
		if i > 0 {
			r.Println("")
		}
		r.Header(2, section.title)
		reportScaffolded(r, groups[section.key])
	}

	r.Println("")
	r.Success("leapcube project initialized with example definitions!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  leapcube validate      Check cubes and views")
	r.Println("  leapcube list          View cubes, views and member counts")
	r.Println("  leapcube datasources   See which data sources the cubes use")

	return nil
}

func reportScaffolded(r *output.Renderer, files []scaffoldedFile) {
	for _, f := range files {
		if f.Skipped {
			r.StatusLine(f.Path, output.StatusSkipped, "already exists")
			continue
		}
		r.StatusLine(f.Path, output.StatusSuccess, "")
	}
}
