package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/leapstack-labs/dbtgen/internal/layout"
	"github.com/leapstack-labs/dbtgen/internal/materialize"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	summary bool
	watch   bool
}

// generateReport is the JSON shape of a materializing run.
type generateReport struct {
	Root    string   `json:"root"`
	Created []string `json:"created"`
	Skipped []string `json:"skipped"`
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"gen"},
		Short:   "Generate the dbt project skeleton",
		Long: `Generate the directories and empty placeholder files of a dbt project.

Every combination of source system, organization and domain is expanded into
paths for each configured resource type (models, data_tests, seeds, macros).
Paths whose last segment has an extension become empty files, the others
become directories. Existing entries are never modified.

Values come from dbtgen.yaml, DBTGEN_* environment variables and flags, in
increasing order of precedence.`,
		Example: `  # Generate from dbtgen.yaml
  dbtgen generate

  # Preview the paths without touching the filesystem
  dbtgen generate --print-only --source-systems stripe --domains sales

  # Only seeds and macros, under an organization
  dbtgen gen --resource-types seeds,macros --organizations acme

  # Count paths per resource type
  dbtgen generate --print-only --summary

  # Regenerate whenever dbtgen.yaml changes
  dbtgen generate --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := NewCommandContext(cmd)
			if err != nil {
				return err
			}
			if opts.watch {
				return runWatch(cmd, c, opts)
			}
			return runGenerate(cmd.Context(), c, opts)
		},
	}

	cmd.Flags().String("root-dir", "", "Project root directory (default \".\")")
	cmd.Flags().StringSlice("source-systems", nil, "Source systems, comma separated")
	cmd.Flags().StringSlice("domains", nil, "Business domains, comma separated")
	cmd.Flags().StringSlice("organizations", nil, "Organizations, comma separated")
	cmd.Flags().StringSlice("resource-types", nil, "Resource types to generate (models|data_tests|seeds|macros)")
	cmd.Flags().Bool("print-only", false, "Print the paths instead of creating them")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "Show the number of paths per resource type")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "Regenerate when the config file changes")

	_ = cmd.RegisterFlagCompletionFunc("resource-types", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return layout.ResourceTypeNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runGenerate(ctx context.Context, c *CommandContext, opts generateOptions) error {
	lc, err := c.Cfg.Layout()
	if err != nil {
		return err
	}
	r := c.Renderer

	if err := lc.Validate(); errors.Is(err, layout.ErrNoSourceSystems) || errors.Is(err, layout.ErrNoDomains) {
		r.Warning(err.Error() + ", nothing to generate")
		return nil
	} else if err != nil {
		return err
	}

	paths := layout.GenerateProjectPaths(lc)
	c.Logger.Debug("generated project paths",
		slog.String("root", lc.RootDir),
		slog.Int("count", len(paths)),
		slog.Int("combinations", len(layout.Tuples(lc))))

	if c.Cfg.PrintOnly {
		if r.EffectiveMode() == output.ModeJSON {
			return r.JSON(paths)
		}
		if err := materialize.Print(r.Writer(), paths); err != nil {
			return err
		}
		if opts.summary {
			r.Println("")
			renderSummary(r, lc)
		}
		return nil
	}

	m := materialize.New(materialize.OSFilesystem(lc.RootDir), c.Logger)
	res, err := m.Materialize(ctx, lc.RootDir, paths)
	if err != nil {
		return err
	}

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(generateReport{
			Root:    lc.RootDir,
			Created: nonNil(res.Created),
			Skipped: nonNil(res.Skipped),
		})
	}

	renderResult(r, lc.RootDir, res)
	if opts.summary {
		r.Println("")
		renderSummary(r, lc)
	}
	return nil
}

func renderResult(r *output.Renderer, root string, res *materialize.Result) {
	if len(res.Created) > 0 {
		r.Header(2, "Created")
		for _, p := range res.Created {
			r.StatusLine(p, output.StatusSuccess, "")
		}
		r.Println("")
	}

	switch {
	case len(res.Created) == 0:
		r.Success(fmt.Sprintf("Project under %s is up to date (%d paths already exist)", root, len(res.Skipped)))
	case len(res.Skipped) == 0:
		r.Success(fmt.Sprintf("Created %d paths under %s", len(res.Created), root))
	default:
		r.Success(fmt.Sprintf("Created %d paths under %s, %d already existed", len(res.Created), root, len(res.Skipped)))
	}
}

// renderSummary shows how many paths each resource type contributes.
// Shared paths such as the generic data tests are counted once per type.
func renderSummary(r *output.Renderer, lc layout.Config) {
	rows := make([][]string, 0, len(lc.ResourceTypes)+1)
	for _, rt := range lc.ResourceTypes {
		rows = append(rows, []string{rt.String(), strconv.Itoa(len(layout.GenerateResourcePaths(lc, rt)))})
	}
	rows = append(rows, []string{"total", strconv.Itoa(len(layout.GenerateProjectPaths(lc)))})

	r.Header(2, "Summary")
	r.Table([]string{"Resource Type", "Paths"}, rows)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
