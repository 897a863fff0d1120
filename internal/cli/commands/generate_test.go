package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/dbtgen/internal/cli/config"
	"github.com/leapstack-labs/dbtgen/internal/cli/output"
	"github.com/leapstack-labs/dbtgen/internal/cli/testutil"
	"github.com/leapstack-labs/dbtgen/internal/layout"
	"github.com/leapstack-labs/dbtgen/internal/materialize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runGenerateCmd executes a standalone generate command in dir.
func runGenerateCmd(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	testutil.Chdir(t, dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cmd := NewGenerateCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestNewGenerateCommand(t *testing.T) {
	cmd := NewGenerateCommand()

	assert.Equal(t, "generate", cmd.Use)
	assert.Equal(t, []string{"gen"}, cmd.Aliases)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	flags := []string{"root-dir", "source-systems", "domains", "organizations", "resource-types", "print-only", "summary", "watch"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestGenerate_PrintOnly(t *testing.T) {
	dir := t.TempDir()

	out, _, err := runGenerateCmd(t, dir,
		"--print-only", "--source-systems", "stripe", "--domains", "sales", "--resource-types", "seeds")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"./seeds/sales/_seed_sales__docs.md",
		"./seeds/sales/_seed_sales__schema.yml",
		"./seeds/sales/seed_sales__example_seed.csv",
	}, testutil.Lines(out))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "print-only must not touch the filesystem")
}

func TestGenerate_PrintOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DBTGEN_OUTPUT", "json")

	out, _, err := runGenerateCmd(t, dir,
		"--print-only", "--source-systems", "stripe", "--domains", "sales", "--organizations", "acme", "--resource-types", "seeds")
	require.NoError(t, err)

	var paths []string
	require.NoError(t, json.Unmarshal([]byte(out), &paths))
	assert.Equal(t, []string{
		"./seeds/acme/sales/_seed_acme_sales__docs.md",
		"./seeds/acme/sales/_seed_acme_sales__schema.yml",
		"./seeds/acme/sales/seed_acme_sales__example_seed.csv",
	}, paths)
}

func TestGenerate_PrintOnlySummary(t *testing.T) {
	out, _, err := runGenerateCmd(t, t.TempDir(),
		"--print-only", "--summary", "--source-systems", "stripe", "--domains", "sales")
	require.NoError(t, err)

	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| models |")
	assert.Contains(t, out, "| total | 36 |")
	testutil.AssertNoANSI(t, out)
}

func TestGenerate_Materializes(t *testing.T) {
	dir := t.TempDir()
	body := "root_dir: warehouse\nsource_systems: [stripe]\ndomains: [sales]\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultConfigFile), []byte(body), 0600))

	out, _, err := runGenerateCmd(t, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Created 36 paths under warehouse")
	testutil.AssertExists(t, filepath.Join(dir, "warehouse"),
		"dbt_project.yml",
		"README.md",
		"packages.yml",
		"analyses",
		"models/staging/stripe/stg_stripe__example_model.sql",
		"models/staging/stripe/base/base_stripe__example_model.sql",
		"models/marts/fct/sales/fct_stripe_sales__example_model.sql",
		"seeds/sales/seed_sales__example_seed.csv",
		"macros/utils/macro_utils__example_cents_to_dollars.sql",
		"data_tests/generic/test_generic_example_dates_not_in_the_future.sql",
	)

	info, err := os.Stat(filepath.Join(dir, "warehouse", "analyses"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestGenerate_SecondRunIsUpToDate(t *testing.T) {
	dir := t.TempDir()
	args := []string{"--source-systems", "stripe", "--domains", "sales", "--resource-types", "seeds"}

	_, _, err := runGenerateCmd(t, dir, args...)
	require.NoError(t, err)

	seed := filepath.Join(dir, "seeds", "sales", "seed_sales__example_seed.csv")
	require.NoError(t, os.WriteFile(seed, []byte("id\n1\n"), 0600))

	out, _, err := runGenerateCmd(t, dir, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "up to date (3 paths already exist)")

	content, err := os.ReadFile(seed)
	require.NoError(t, err)
	assert.Equal(t, "id\n1\n", string(content), "existing files must not be modified")
}

func TestGenerate_JSONReport(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DBTGEN_OUTPUT", "json")

	out, _, err := runGenerateCmd(t, dir, "--source-systems", "stripe", "--domains", "sales", "--resource-types", "seeds")
	require.NoError(t, err)

	var report generateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, ".", report.Root)
	assert.Len(t, report.Created, 3)
	assert.Empty(t, report.Skipped)
}

func TestGenerate_NothingConfigured(t *testing.T) {
	dir := t.TempDir()

	out, errOut, err := runGenerateCmd(t, dir, "--source-systems", "stripe")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Contains(t, errOut, "nothing to generate")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		errSubstr string
	}{
		{
			name:      "unknown resource type",
			args:      []string{"--print-only", "--source-systems", "s", "--domains", "d", "--resource-types", "snapshots"},
			errSubstr: "unknown resource type",
		},
		{
			name:      "positional argument",
			args:      []string{"extra"},
			errSubstr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runGenerateCmd(t, t.TempDir(), tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestGenerate_BlockedPathFails(t *testing.T) {
	dir := t.TempDir()
	// a file where the seeds directory should be
	require.NoError(t, os.WriteFile(filepath.Join(dir, "seeds"), nil, 0600))

	_, _, err := runGenerateCmd(t, dir, "--source-systems", "stripe", "--domains", "sales", "--resource-types", "seeds")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to materialize ./seeds/sales/")
}

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name    string
		res     *materialize.Result
		want    []string
		notWant []string
	}{
		{
			name: "all created",
			res:  &materialize.Result{Created: []string{"./seeds", "./seeds/a.csv"}},
			want: []string{"## Created", "- ./seeds: success", "- ./seeds/a.csv: success", "**Created 2 paths under .**"},
		},
		{
			name:    "up to date",
			res:     &materialize.Result{Skipped: []string{"./a", "./b", "./c"}},
			want:    []string{"**Project under . is up to date (3 paths already exist)**"},
			notWant: []string{"## Created"},
		},
		{
			name: "partly created",
			res:  &materialize.Result{Created: []string{"./b"}, Skipped: []string{"./a"}},
			want: []string{"- ./b: success", "**Created 1 paths under ., 1 already existed**"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := testutil.NewTestRendererMarkdown()
			renderResult(tr.Renderer, ".", tt.res)

			for _, want := range tt.want {
				assert.Contains(t, tr.Output(), want)
			}
			for _, notWant := range tt.notWant {
				assert.NotContains(t, tr.Output(), notWant)
			}
			assert.Empty(t, tr.ErrorOutput())
			testutil.AssertNoANSI(t, tr.Output())
		})
	}
}

func TestRenderSummary(t *testing.T) {
	lc := layout.DefaultConfig()
	lc.SourceSystems = []string{"stripe"}
	lc.Domains = []string{"sales"}
	lc.ResourceTypes = []layout.ResourceType{layout.Seeds}

	tr := testutil.NewTestRendererMarkdown()
	renderSummary(tr.Renderer, lc)

	out := tr.Output()
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| Resource Type | Paths |")
	assert.Contains(t, out, "| seeds | 3 |")
	assert.Contains(t, out, "| total | 3 |")
}

func TestNewCommandContext_ReusesContextState(t *testing.T) {
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cfg := config.Defaults()
	cfg.OutputFormat = string(output.ModeMarkdown)
	tr := testutil.NewTestRendererMarkdown()

	cmd := NewGenerateCommand()
	ctx := config.WithConfig(context.Background(), cfg)
	cmd.SetContext(output.WithRenderer(ctx, tr.Renderer))

	c, err := NewCommandContext(cmd)
	require.NoError(t, err)
	assert.Same(t, cfg, c.Cfg)
	assert.Same(t, tr.Renderer, c.Renderer)
}

func TestNewCommandContext_BuildsRendererWithoutContext(t *testing.T) {
	testutil.Chdir(t, t.TempDir())
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)
	t.Setenv("DBTGEN_OUTPUT", "json")

	cmd := NewGenerateCommand()
	cmd.SetContext(context.Background())

	c, err := NewCommandContext(cmd)
	require.NoError(t, err)
	require.NotNil(t, c.Renderer)
	assert.Equal(t, output.ModeJSON, c.Renderer.EffectiveMode())
}
