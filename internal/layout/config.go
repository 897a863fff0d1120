package layout

import (
	"errors"
	"maps"
	"slices"
)

// Validation errors reported by Config.Validate.
var (
	ErrEmptyRootDir     = errors.New("root directory is required")
	ErrNoResourceTypes  = errors.New("at least one resource type is required")
	ErrNoSourceSystems  = errors.New("at least one source system is required")
	ErrNoDomains        = errors.New("at least one domain is required")
	ErrEmptyOrgListItem = errors.New("organizations must not contain only blank values")
)

// Config describes the project skeleton to generate.
type Config struct {
	// RootDir is prepended to every path as written.
	RootDir       string
	ResourceTypes []ResourceType
	SourceSystems []string
	// Organizations is optional. When empty, a single pass without an
	// organization is generated.
	Organizations []string
	Domains       []string
	// ModelingLayers maps a layer name to its short-code prefixes.
	// Only staging, intermediate and marts produce paths.
	ModelingLayers       map[string][]string
	ModelTypes           []string
	DataTestsTypes       []string
	MetadataFileSuffixes []string
}

// Tuple is one (source system, domain, organization) combination.
// An empty Organization means no organization.
type Tuple struct {
	SourceSystem string
	Domain       string
	Organization string
}

// Owner returns the name used in place of the source system: the
// organization when present, the source system otherwise.
func (t Tuple) Owner() string {
	if t.Organization != "" {
		return t.Organization
	}
	return t.SourceSystem
}

// Clone returns a deep copy of c.
func (c Config) Clone() Config {
	out := c
	out.ResourceTypes = slices.Clone(c.ResourceTypes)
	out.SourceSystems = slices.Clone(c.SourceSystems)
	out.Organizations = slices.Clone(c.Organizations)
	out.Domains = slices.Clone(c.Domains)
	out.ModelTypes = slices.Clone(c.ModelTypes)
	out.DataTestsTypes = slices.Clone(c.DataTestsTypes)
	out.MetadataFileSuffixes = slices.Clone(c.MetadataFileSuffixes)
	if c.ModelingLayers != nil {
		out.ModelingLayers = make(map[string][]string, len(c.ModelingLayers))
		for layer, prefixes := range c.ModelingLayers {
			out.ModelingLayers[layer] = slices.Clone(prefixes)
		}
	}
	return out
}

// Validate reports the first reason c would produce no paths, or an
// unknown resource type. GenerateProjectPaths does not require a valid
// config; it returns an empty result instead.
func (c Config) Validate() error {
	if c.RootDir == "" {
		return ErrEmptyRootDir
	}
	if len(c.ResourceTypes) == 0 {
		return ErrNoResourceTypes
	}
	for _, rt := range c.ResourceTypes {
		if !rt.Valid() {
			return ErrUnknownResourceType
		}
	}
	if len(nonBlank(c.SourceSystems)) == 0 {
		return ErrNoSourceSystems
	}
	if len(nonBlank(c.Domains)) == 0 {
		return ErrNoDomains
	}
	if len(c.Organizations) > 0 && len(nonBlank(c.Organizations)) == 0 {
		return ErrEmptyOrgListItem
	}
	return nil
}

// layerNames returns the configured layer names in sorted order.
func (c Config) layerNames() []string {
	return slices.Sorted(maps.Keys(c.ModelingLayers))
}

// nonBlank returns the non-empty values of in, keeping order.
func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
