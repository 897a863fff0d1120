package commands

import (
	"log/slog"

	"github.com/leapstack-labs/dbtgen/internal/cli/config"
	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/spf13/cobra"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd. The configuration
// and renderer stored in the context by the root command are reused; a
// command executed on its own loads its config from its own flags.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	r, ok := output.FromContext(cmd.Context())
	if !ok {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// getConfig returns the current configuration, loading it when the root
// command has not done so already.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg, ok := config.FromContext(cmd.Context()); ok {
		return cfg, nil
	}
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}

	var cfgFile string
	if f := cmd.Flags().Lookup("config"); f != nil {
		cfgFile = f.Value.String()
	}
	cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
