package commands

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/leapcube/internal/cli/config"
	"github.com/leapstack-labs/leapcube/internal/cli/output"
	"github.com/leapstack-labs/leapcube/internal/project"
	"github.com/leapstack-labs/leapcube/pkg/advisory"
	"github.com/leapstack-labs/leapcube/pkg/validate"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned by commands that found validation errors,
// so the process exits non-zero after the errors were printed.
var ErrValidationFailed = errors.New("validation failed")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Layout    project.Layout
	Validator *validate.Validator
	Renderer  *output.Renderer
}

// NewCommandContext creates a CommandContext with a validator configured
// from the loaded advisory settings.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cmdCtx := NewCommandContextWithoutValidator(cmd)

	v, err := newValidator(cmdCtx.Cfg, cmdCtx.Logger)
	if err != nil {
		return nil, err
	}
	cmdCtx.Validator = v
	return cmdCtx, nil
}

// NewCommandContextWithoutValidator creates a CommandContext for commands
// that only need configuration and output.
func NewCommandContextWithoutValidator(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Layout:   project.NewLayout(cfg.ProjectRoot, cfg.Project()),
		Renderer: r,
	}
}

// WithFormat replaces the renderer when a per-command format was given.
func (c *CommandContext) WithFormat(cmd *cobra.Command, format string) {
	if format == "" {
		return
	}
	c.Renderer = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ParseMode(format))
}

// getConfig returns the current configuration, or defaults rooted at the
// working directory when none was loaded.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	cfg := config.DefaultConfig()
	cfg.ProjectRoot = "."
	return cfg
}

func newValidator(cfg *config.Config, logger *slog.Logger) (*validate.Validator, error) {
	advisories, err := advisory.ConfigFromProject(cfg.Advisories)
	if err != nil {
		return nil, err
	}
	return validate.New(validate.Config{
		Logger:     logger,
		Advisories: advisories,
	}), nil
}
