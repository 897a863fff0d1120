// Package layout expands a project configuration into the full set of
// directory and file paths of a dbt-style project skeleton.
//
// The package is pure: BuildPaths and GenerateProjectPaths never touch the
// filesystem and always return the same sorted output for the same input.
package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ResourceType identifies a top-level dbt resource directory.
type ResourceType int

// Recognized resource types.
const (
	Models ResourceType = iota + 1
	DataTests
	Seeds
	Macros
)

// ErrUnknownResourceType is returned when a resource type name is not recognized.
var ErrUnknownResourceType = errors.New("unknown resource type")

var resourceTypeNames = map[ResourceType]string{
	Models:    "models",
	DataTests: "data_tests",
	Seeds:     "seeds",
	Macros:    "macros",
}

// String returns the directory name of the resource type.
func (r ResourceType) String() string {
	if name, ok := resourceTypeNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ResourceType(%d)", int(r))
}

// Valid reports whether r is one of the recognized resource types.
func (r ResourceType) Valid() bool {
	_, ok := resourceTypeNames[r]
	return ok
}

// AllResourceTypes returns every recognized resource type in canonical order.
func AllResourceTypes() []ResourceType {
	return []ResourceType{Models, DataTests, Seeds, Macros}
}

// ParseResourceType converts a directory name into a ResourceType.
// Matching is case-insensitive and tolerates surrounding whitespace.
func ParseResourceType(s string) (ResourceType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for rt, n := range resourceTypeNames {
		if n == name {
			return rt, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownResourceType, s, strings.Join(ResourceTypeNames(), ", "))
}

// ParseResourceTypes parses a list of names, dropping blanks and duplicates
// while keeping the first-seen order.
func ParseResourceTypes(names []string) ([]ResourceType, error) {
	var out []ResourceType
	seen := make(map[ResourceType]bool)
	for _, n := range names {
		if strings.TrimSpace(n) == "" {
			continue
		}
		rt, err := ParseResourceType(n)
		if err != nil {
			return nil, err
		}
		if seen[rt] {
			continue
		}
		seen[rt] = true
		out = append(out, rt)
	}
	return out, nil
}

// ResourceTypeNames returns the names of all recognized resource types.
func ResourceTypeNames() []string {
	all := AllResourceTypes()
	names := make([]string, len(all))
	for i, rt := range all {
		names[i] = rt.String()
	}
	return names
}
