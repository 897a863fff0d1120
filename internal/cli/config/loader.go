package config

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// configKey is used to store the loaded config in context.
type configKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// configFileNames are the file names searched for, in order.
var configFileNames = []string{DefaultConfigFile, "dbtgen.yml"}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config // Stores the loaded config for access by commands
)

// configIn returns the config file inside dir, or "" if there is none.
func configIn(dir string) string {
	for _, name := range configFileNames {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigUpward searches upward from startDir for a dbtgen config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigUpward(startDir string) string {
	dir := startDir
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configIn(dir); found != "" {
			return found
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}
	return ""
}

// findConfigFile finds the config file to use.
// Priority: explicit path > dbtgen.yaml/dbtgen.yml in cwd or any parent.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigUpward(cwd)
}

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// LoadConfig loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func LoadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	def := Defaults()
	layers := make(map[string]interface{}, len(def.ModelingLayers))
	for layer, prefixes := range def.ModelingLayers {
		layers[layer] = prefixes
	}
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"root_dir":               def.RootDir,
		"resource_types":         def.ResourceTypes,
		"modeling_layers":        layers,
		"model_types":            def.ModelTypes,
		"data_tests_types":       def.DataTestsTypes,
		"metadata_file_suffixes": def.MetadataFileSuffixes,
		"print_only":             false,
		"verbose":                false,
		"output":                 DefaultOutput,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (DBTGEN_ prefix)
	// Transform: DBTGEN_SOURCE_SYSTEMS -> source_systems
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			// Transform kebab-case to snake_case for config keys
			key := strings.ReplaceAll(f.Name, "-", "_")
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Unmarshal into Config struct. Comma-separated strings (from env
	// vars or single-prefix YAML values) become slices.
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook:       mapstructure.StringToSliceHookFunc(","),
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// 6. Anchor root_dir at the config file's directory unless an env var
	// or flag overrode it
	rootOverridden := os.Getenv(EnvPrefix+"ROOT_DIR") != "" || (flags != nil && flags.Changed("root-dir"))
	if configFileUsed != "" && !rootOverridden {
		cfg.RootDir = resolvePathRelativeTo(cfg.RootDir, relativeToCwd(filepath.Dir(configFileUsed)))
	}

	// Store config for access by commands
	currentConfig = &cfg

	return &cfg, nil
}

// relativeToCwd expresses dir relative to the working directory when possible.
func relativeToCwd(dir string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return dir
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	if rel, err := filepath.Rel(cwd, abs); err == nil {
		return rel
	}
	return dir
}

// resolvePathRelativeTo resolves a path relative to baseDir if it's not absolute.
// Returns the path unchanged if it's empty, absolute, or baseDir is the
// working directory.
func resolvePathRelativeTo(path, baseDir string) string {
	if path == "" || filepath.IsAbs(path) || baseDir == "." || baseDir == "" {
		return path
	}
	return filepath.ToSlash(filepath.Join(baseDir, path))
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
// This is available after LoadConfig is called.
func GetCurrentConfig() *Config {
	return currentConfig
}

// WithConfig returns a copy of ctx carrying cfg.
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext returns the config stored by WithConfig, if any.
func FromContext(ctx context.Context) (*Config, bool) {
	if ctx == nil {
		return nil, false
	}
	cfg, ok := ctx.Value(configKey{}).(*Config)
	return cfg, ok && cfg != nil
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.New(slog.DiscardHandler)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}

// NewLogger builds the CLI logger: text on w, Debug when verbose, Warn otherwise.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
