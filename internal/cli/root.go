// Package cli provides the command-line interface for dbtgen.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/leapstack-labs/dbtgen/internal/cli/commands"
	"github.com/leapstack-labs/dbtgen/internal/cli/config"
	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dbtgen",
		Short: "dbtgen - dbt project skeleton generator",
		Long: `dbtgen creates the directory and file skeleton of a dbt project.

Source systems, organizations and domains are combined into staging,
intermediate and marts models, data tests, seeds and macros that follow a
single naming convention.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Flags())
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := config.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx = config.WithConfig(ctx, cfg)
			ctx = context.WithValue(ctx, config.LoggerKey(), logger)

			renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))
			ctx = output.WithRenderer(ctx, renderer)
			cmd.SetContext(ctx)

			if configFile := config.GetConfigFileUsed(); configFile != "" {
				logger.Debug("using config file", "path", configFile)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./dbtgen.yaml, searched upward)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(commands.NewVersionCommand(Version, GitCommit, BuildDate))
	rootCmd.AddCommand(commands.NewGenerateCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetConfig retrieves the config from the command context.
func GetConfig(ctx context.Context) *config.Config {
	if c, ok := config.FromContext(ctx); ok {
		return c
	}
	return config.Defaults()
}

// GetRenderer retrieves the renderer from the command context.
func GetRenderer(ctx context.Context) *output.Renderer {
	if r, ok := output.FromContext(ctx); ok {
		return r
	}
	return output.NewRenderer(os.Stdout, os.Stderr, output.ModeAuto)
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dbtgen.

To load completions:

Bash:
  $ source <(dbtgen completion bash)

Zsh:
  $ dbtgen completion zsh > "${fpath[1]}/_dbtgen"

Fish:
  $ dbtgen completion fish | source

PowerShell:
  PS> dbtgen completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
	return cmd
}
