package commands

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/dbtgen/internal/cli/config"
	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const configHeader = `# dbtgen configuration.
# Every value can be overridden with a DBTGEN_* environment variable or a flag
# of "dbtgen generate".
`

type initOptions struct {
	force         bool
	sourceSystems []string
	domains       []string
	organizations []string
}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a dbtgen.yaml configuration file",
		Long: `Create a dbtgen.yaml holding the default naming scheme.

Fill in source_systems and domains (and optionally organizations), then run
'dbtgen generate' to create the project skeleton.`,
		Example: `  # Initialize in current directory
  dbtgen init

  # Initialize with starting values
  dbtgen init --source-systems stripe,adyen --domains sales

  # Initialize in a new directory
  dbtgen init my-project

  # Overwrite an existing config
  dbtgen init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeAuto)
			if f := cmd.Flags().Lookup("output"); f != nil {
				r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(f.Value.String()))
			}
			return runInit(r, dir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite existing configuration")
	cmd.Flags().StringSliceVar(&opts.sourceSystems, "source-systems", nil, "Initial source systems")
	cmd.Flags().StringSliceVar(&opts.domains, "domains", nil, "Initial domains")
	cmd.Flags().StringSliceVar(&opts.organizations, "organizations", nil, "Initial organizations")

	return cmd
}

func runInit(r *output.Renderer, dir string, opts initOptions) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, config.DefaultConfigFile)
	if _, err := os.Stat(configPath); err == nil && !opts.force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", config.DefaultConfigFile)
	}

	content, err := renderInitConfig(opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, output.StatusSuccess, "")
	r.Println("")
	r.Success("dbtgen initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. List your source_systems and domains in " + config.DefaultConfigFile)
	r.Println("  2. Run 'dbtgen generate --print-only' to preview the paths")
	r.Println("  3. Run 'dbtgen generate' to create them")

	return nil
}

// renderInitConfig serializes the default configuration with the given
// starting values. Run-time options are left out.
func renderInitConfig(opts initOptions) ([]byte, error) {
	cfg := config.Defaults()
	cfg.SourceSystems = nonNil(opts.sourceSystems)
	cfg.Domains = nonNil(opts.domains)
	cfg.Organizations = nonNil(opts.organizations)
	cfg.OutputFormat = ""

	var buf bytes.Buffer
	buf.WriteString(configHeader)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.Bytes(), nil
}
