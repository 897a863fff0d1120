package layout

import (
	"maps"
	"slices"
	"strings"
)

// PathSet is an unordered collection of unique paths with a sorted view.
type PathSet struct {
	paths map[string]struct{}
}

// NewPathSet creates a PathSet holding paths.
func NewPathSet(paths ...string) *PathSet {
	s := &PathSet{paths: make(map[string]struct{}, len(paths))}
	s.AddAll(paths)
	return s
}

// Add inserts p.
func (s *PathSet) Add(p string) {
	s.paths[p] = struct{}{}
}

// AddAll inserts every path in ps.
func (s *PathSet) AddAll(ps []string) {
	for _, p := range ps {
		s.Add(p)
	}
}

// Union inserts every path of other.
func (s *PathSet) Union(other *PathSet) {
	for p := range other.paths {
		s.Add(p)
	}
}

// Contains reports whether p is in the set.
func (s *PathSet) Contains(p string) bool {
	_, ok := s.paths[p]
	return ok
}

// Len returns the number of paths.
func (s *PathSet) Len() int {
	return len(s.paths)
}

// Sorted returns the paths in ascending byte order. The result is never nil.
func (s *PathSet) Sorted() []string {
	out := slices.Sorted(maps.Keys(s.paths))
	if out == nil {
		return []string{}
	}
	return out
}

// joinPath joins root and segments with forward slashes. The root is kept
// as written apart from a trailing slash, so "./proj" stays "./proj".
func joinPath(root string, segments ...string) string {
	if root == "" {
		return strings.Join(segments, "/")
	}
	var b strings.Builder
	trimmed := strings.TrimRight(root, "/")
	if trimmed == "" {
		// root is "/" itself
		b.WriteString("/")
	} else {
		b.WriteString(trimmed)
		b.WriteString("/")
	}
	b.WriteString(strings.Join(segments, "/"))
	return b.String()
}
