package commands

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/leapstack-labs/dbtgen/internal/cli/config"
	clitestutil "github.com/leapstack-labs/dbtgen/internal/cli/testutil"
	"github.com/leapstack-labs/dbtgen/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigWatcher(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "dbtgen.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(cfgPath, []byte("domains: [sales]\n"), 0600))

	w, err := newConfigWatcher(cfgPath, 20*time.Millisecond, testutil.NewTestLogger(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, changes) }()

	// unrelated files are ignored
	require.NoError(t, os.WriteFile(other, []byte("x"), 0600))
	select {
	case <-changes:
		t.Fatal("change reported for an unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(cfgPath, []byte("domains: [sales, risk]\n"), 0600))
	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("no change reported for the config file")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
}

func TestConfigWatcher_MissingDirectory(t *testing.T) {
	_, err := newConfigWatcher(filepath.Join(t.TempDir(), "missing", "dbtgen.yaml"), time.Millisecond, testutil.NewTestLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestGenerate_WatchNeedsConfigFile(t *testing.T) {
	_, _, err := runGenerateCmd(t, t.TempDir(), "--watch", "--source-systems", "s", "--domains", "d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs a config file")
}

func TestRunWatch_RegeneratesOnConfigChange(t *testing.T) {
	dir := clitestutil.SetupTestProject(t, "source_systems: [stripe]\ndomains: [sales]\nresource_types: [seeds]\n")
	clitestutil.Chdir(t, dir)
	config.ResetConfig()
	t.Cleanup(config.ResetConfig)

	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)
	cfgPath := config.GetConfigFileUsed()
	require.NotEmpty(t, cfgPath)

	tr := clitestutil.NewTestRendererMarkdown()
	c := &CommandContext{Cfg: cfg, Logger: testutil.NewTestLogger(t), Renderer: tr.Renderer}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cmd := NewGenerateCommand()
	cmd.SetContext(ctx)

	done := make(chan error, 1)
	go func() { done <- runWatch(cmd, c, generateOptions{}) }()

	require.Eventually(t, func() bool {
		return strings.Contains(tr.Output(), "Watching")
	}, 5*time.Second, 20*time.Millisecond, "watcher never started")
	clitestutil.AssertExists(t, dir, "seeds/sales/seed_sales__example_seed.csv")

	exists := func(p string) func() bool {
		return func() bool {
			_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(p)))
			return err == nil
		}
	}

	write := func(body string) {
		require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0600))
	}

	write("source_systems: [stripe]\ndomains: [sales, risk]\nresource_types: [seeds]\n")
	require.Eventually(t, exists("seeds/risk/seed_risk__example_seed.csv"), 5*time.Second, 20*time.Millisecond,
		"new domain was not generated")

	write("domains: [sales\n")
	require.Eventually(t, func() bool {
		return strings.Contains(tr.ErrorOutput(), "failed to reload")
	}, 5*time.Second, 20*time.Millisecond, "invalid config was not reported")
	assert.Contains(t, tr.ErrorOutput(), "Error: ")

	// still watching after the error
	write("source_systems: [stripe]\ndomains: [ops]\nresource_types: [seeds]\n")
	require.Eventually(t, exists("seeds/ops/seed_ops__example_seed.csv"), 5*time.Second, 20*time.Millisecond,
		"watcher stopped after an invalid config")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("runWatch did not stop after cancel")
	}
}
