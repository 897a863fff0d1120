package layout

// Tuples enumerates source systems × organizations × domains in
// configuration order. When no organization is configured, each tuple has
// an empty Organization. Blank values are skipped.
func Tuples(cfg Config) []Tuple {
	orgs := nonBlank(cfg.Organizations)
	if len(orgs) == 0 {
		// single pass without organization
		orgs = []string{""}
	}

	var tuples []Tuple
	for _, ss := range nonBlank(cfg.SourceSystems) {
		for _, org := range orgs {
			for _, domain := range nonBlank(cfg.Domains) {
				tuples = append(tuples, Tuple{
					SourceSystem: ss,
					Domain:       domain,
					Organization: org,
				})
			}
		}
	}
	return tuples
}

// GenerateProjectPaths returns the sorted, duplicate-free set of every path
// of the project described by cfg. The result is empty, never nil, when cfg
// lacks resource types, source systems or domains.
func GenerateProjectPaths(cfg Config) []string {
	set := NewPathSet()
	tuples := Tuples(cfg)
	for _, rt := range cfg.ResourceTypes {
		for _, t := range tuples {
			set.AddAll(BuildPaths(rt, t, cfg))
		}
	}
	return set.Sorted()
}

// GenerateResourcePaths returns the sorted paths contributed by a single
// resource type across all tuples of cfg.
func GenerateResourcePaths(cfg Config, rt ResourceType) []string {
	set := NewPathSet()
	for _, t := range Tuples(cfg) {
		set.AddAll(BuildPaths(rt, t, cfg))
	}
	return set.Sorted()
}
