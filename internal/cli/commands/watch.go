package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/leapstack-labs/dbtgen/internal/cli/config"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const watchDebounce = 200 * time.Millisecond

// configWatcher signals when a single config file changes. The parent
// directory is watched so editors that replace the file on save are seen.
type configWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	logger   *slog.Logger
}

func newConfigWatcher(path string, debounce time.Duration, logger *slog.Logger) (*configWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &configWatcher{path: abs, watcher: w, debounce: debounce, logger: logger}, nil
}

// Run forwards debounced change notifications to changes until ctx is done.
// A pending notification is never queued twice.
func (w *configWatcher) Run(ctx context.Context, changes chan<- struct{}) error {
	defer func() { _ = w.watcher.Close() }()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("config file changed", "path", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				select {
				case changes <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// runWatch generates once, then regenerates every time the config file
// changes until interrupted. Errors after the first run are reported and
// watching continues.
func runWatch(cmd *cobra.Command, c *CommandContext, opts generateOptions) error {
	cfgPath := config.GetConfigFileUsed()
	if cfgPath == "" {
		return errors.New("--watch needs a config file (dbtgen.yaml)")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runGenerate(ctx, c, opts); err != nil {
		return err
	}

	w, err := newConfigWatcher(cfgPath, watchDebounce, c.Logger)
	if err != nil {
		return err
	}
	c.Renderer.Println(c.Renderer.Styles().Muted.Render("Watching " + cfgPath + " for changes (Ctrl+C to stop)"))

	changes := make(chan struct{}, 1)
	eg, egctx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return w.Run(egctx, changes)
	})

	eg.Go(func() error {
		for {
			select {
			case <-egctx.Done():
				return nil
			case <-changes:
				regenerate(egctx, cmd, c, cfgPath, opts)
			}
		}
	})

	return eg.Wait()
}

// regenerate reloads the configuration and generates again. The command's
// flags keep overriding the file.
func regenerate(ctx context.Context, cmd *cobra.Command, c *CommandContext, cfgPath string, opts generateOptions) {
	cfg, err := config.LoadConfig(cfgPath, cmd.Flags())
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		c.Renderer.Error(fmt.Sprintf("failed to reload %s: %v", cfgPath, err))
		return
	}

	c.Cfg = cfg
	c.Logger.Info("regenerating", "config", cfgPath)
	if err := runGenerate(ctx, c, opts); err != nil {
		c.Renderer.Error(err.Error())
	}
}
