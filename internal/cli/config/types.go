// Package config provides configuration management for the dbtgen CLI.
//
// Values are layered from defaults, a dbtgen.yaml file, DBTGEN_* environment
// variables and command-line flags, and converted into a layout.Config for
// path generation.
package config

import (
	"fmt"

	"github.com/leapstack-labs/dbtgen/internal/layout"
)

// Config holds all CLI configuration options.
type Config struct {
	RootDir              string              `koanf:"root_dir" yaml:"root_dir"`
	ResourceTypes        []string            `koanf:"resource_types" yaml:"resource_types"`
	SourceSystems        []string            `koanf:"source_systems" yaml:"source_systems"`
	Organizations        []string            `koanf:"organizations" yaml:"organizations"`
	Domains              []string            `koanf:"domains" yaml:"domains"`
	ModelingLayers       map[string][]string `koanf:"modeling_layers" yaml:"modeling_layers"`
	ModelTypes           []string            `koanf:"model_types" yaml:"model_types"`
	DataTestsTypes       []string            `koanf:"data_tests_types" yaml:"data_tests_types"`
	MetadataFileSuffixes []string            `koanf:"metadata_file_suffixes" yaml:"metadata_file_suffixes"`
	PrintOnly            bool                `koanf:"print_only" yaml:"print_only,omitempty"`
	Verbose              bool                `koanf:"verbose" yaml:"verbose,omitempty"`
	OutputFormat         string              `koanf:"output" yaml:"output,omitempty"`
}

// Default configuration values.
const (
	DefaultConfigFile = "dbtgen.yaml"
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	EnvPrefix         = "DBTGEN_"
)

// Defaults returns a Config holding the default naming scheme and no
// source systems, organizations or domains.
func Defaults() *Config {
	def := layout.DefaultConfig()
	return &Config{
		RootDir:              def.RootDir,
		ResourceTypes:        layout.ResourceTypeNames(),
		ModelingLayers:       def.ModelingLayers,
		ModelTypes:           def.ModelTypes,
		DataTestsTypes:       def.DataTestsTypes,
		MetadataFileSuffixes: def.MetadataFileSuffixes,
		OutputFormat:         DefaultOutput,
	}
}

// Layout converts the CLI configuration into a layout.Config. Resource type
// names are parsed here so unknown ones fail before any path is generated.
func (c *Config) Layout() (layout.Config, error) {
	rts, err := layout.ParseResourceTypes(c.ResourceTypes)
	if err != nil {
		return layout.Config{}, fmt.Errorf("invalid resource_types: %w", err)
	}

	lc := layout.Config{
		RootDir:              c.RootDir,
		ResourceTypes:        rts,
		SourceSystems:        trimAll(c.SourceSystems),
		Organizations:        trimAll(c.Organizations),
		Domains:              trimAll(c.Domains),
		ModelTypes:           trimAll(c.ModelTypes),
		DataTestsTypes:       trimAll(c.DataTestsTypes),
		MetadataFileSuffixes: trimAll(c.MetadataFileSuffixes),
	}
	if len(c.ModelingLayers) > 0 {
		lc.ModelingLayers = make(map[string][]string, len(c.ModelingLayers))
		for layer, prefixes := range c.ModelingLayers {
			lc.ModelingLayers[layer] = trimAll(prefixes)
		}
	}

	// An explicitly empty resource_types list means "use defaults", like
	// every other naming field.
	layout.ApplyDefaults(&lc)
	return lc, nil
}
