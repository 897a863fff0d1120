package layout

// Default configuration values.
const (
	DefaultRootDir = "."

	LayerStaging      = "staging"
	LayerIntermediate = "intermediate"
	LayerMarts        = "marts"

	// BasePrefix marks the staging sub-layer that gets its own directory
	// and no sources file.
	BasePrefix = "base"

	// GenericTestType is the data test type whose paths do not depend on
	// source system, organization or domain.
	GenericTestType = "generic"
)

// DefaultResourceTypes returns the resource types generated by default.
func DefaultResourceTypes() []ResourceType {
	return AllResourceTypes()
}

// DefaultModelingLayers returns the default layer to prefix mapping.
func DefaultModelingLayers() map[string][]string {
	return map[string][]string{
		LayerStaging:      {"stg", BasePrefix},
		LayerIntermediate: {"int"},
		LayerMarts:        {"mart"},
	}
}

// DefaultModelTypes returns the default marts model types.
func DefaultModelTypes() []string {
	return []string{"fct", "dim", "mart"}
}

// DefaultDataTestsTypes returns the default data test types.
func DefaultDataTestsTypes() []string {
	return []string{GenericTestType, "singular"}
}

// DefaultMetadataFileSuffixes returns the suffixes of the metadata files
// emitted next to every example resource.
func DefaultMetadataFileSuffixes() []string {
	return []string{"__schema.yml", "__docs.md"}
}

// DefaultConfig returns a new Config populated with defaults. Every call
// returns independent slices and maps.
func DefaultConfig() Config {
	return Config{
		RootDir:              DefaultRootDir,
		ResourceTypes:        DefaultResourceTypes(),
		ModelingLayers:       DefaultModelingLayers(),
		ModelTypes:           DefaultModelTypes(),
		DataTestsTypes:       DefaultDataTestsTypes(),
		MetadataFileSuffixes: DefaultMetadataFileSuffixes(),
	}
}

// ApplyDefaults fills unset naming fields of c with defaults. The
// combination lists (source systems, organizations, domains) are left alone.
func ApplyDefaults(c *Config) {
	if c == nil {
		return
	}
	if c.RootDir == "" {
		c.RootDir = DefaultRootDir
	}
	if len(c.ResourceTypes) == 0 {
		c.ResourceTypes = DefaultResourceTypes()
	}
	if len(c.ModelingLayers) == 0 {
		c.ModelingLayers = DefaultModelingLayers()
	}
	if len(c.ModelTypes) == 0 {
		c.ModelTypes = DefaultModelTypes()
	}
	if len(c.DataTestsTypes) == 0 {
		c.DataTestsTypes = DefaultDataTestsTypes()
	}
	if len(c.MetadataFileSuffixes) == 0 {
		c.MetadataFileSuffixes = DefaultMetadataFileSuffixes()
	}
}
