package layout

import "strings"

// Fixed file names emitted regardless of the tuple.
const (
	ProjectFile      = "dbt_project.yml"
	ReadmeFile       = "README.md"
	PackagesFile     = "packages.yml"
	AnalysesDir      = "analyses"
	MacroUtilsDir    = "utils"
	sourcesSuffix    = "__sources.yml"
	exampleModel     = "__example_model.sql"
	exampleTest      = "__example_test.sql"
	exampleSeed      = "__example_seed.csv"
	examplePayments  = "__example_generate_payment_methods.sql"
	exampleCents     = "__example_cents_to_dollars.sql"
	exampleDatesTest = "_example_dates_not_in_the_future.sql"
	docsSuffix       = "__docs.md"
)

// RootFiles returns the project-level paths contributed by the macros
// resource type, independent of any combination.
func RootFiles() []string {
	return []string{ProjectFile, ReadmeFile, AnalysesDir, PackagesFile}
}

// BuildPaths returns the sorted, unique paths of resource type rt for one
// tuple. It returns an empty slice for an unrecognized resource type or a
// tuple without a source system or domain.
func BuildPaths(rt ResourceType, t Tuple, cfg Config) []string {
	if !rt.Valid() || t.SourceSystem == "" || t.Domain == "" {
		return []string{}
	}

	b := &builder{cfg: cfg, rt: rt, set: NewPathSet()}
	switch rt {
	case Models:
		b.models(t)
	case DataTests:
		b.dataTests(t)
	case Seeds:
		b.seeds(t)
	case Macros:
		b.macros(t)
	}
	return b.set.Sorted()
}

type builder struct {
	cfg Config
	rt  ResourceType
	set *PathSet
}

// add records <root>/<resource type>/<segments...>.
func (b *builder) add(dir []string, name string) {
	segments := make([]string, 0, len(dir)+2)
	segments = append(segments, b.rt.String())
	segments = append(segments, dir...)
	segments = append(segments, name)
	b.set.Add(joinPath(b.cfg.RootDir, segments...))
}

// addMetadata records one metadata file per configured suffix.
func (b *builder) addMetadata(dir []string, prefix string) {
	for _, suffix := range b.cfg.MetadataFileSuffixes {
		if suffix == "" {
			continue
		}
		b.add(dir, prefix+suffix)
	}
}

func (b *builder) models(t Tuple) {
	for _, layer := range b.cfg.layerNames() {
		prefixes := nonBlank(b.cfg.ModelingLayers[layer])
		switch layer {
		case LayerStaging:
			for _, p := range prefixes {
				b.staging(layer, p, t)
			}
		case LayerIntermediate:
			for _, p := range prefixes {
				b.intermediate(layer, p, t)
			}
		case LayerMarts:
			for _, mt := range nonBlank(b.cfg.ModelTypes) {
				b.marts(layer, mt, t)
			}
		}
	}
}

// staging models live per owner; the base sub-layer gets its own
// directory and no sources file.
func (b *builder) staging(layer, prefix string, t Tuple) {
	dir := []string{layer, t.Owner()}
	if prefix == BasePrefix {
		dir = append(dir, prefix)
	}
	name := prefix + "_" + t.Owner()

	b.addMetadata(dir, "_"+name)
	if prefix != BasePrefix {
		b.add(dir, "_"+name+sourcesSuffix)
	}
	b.add(dir, name+exampleModel)
}

func (b *builder) intermediate(layer, prefix string, t Tuple) {
	dir := append([]string{layer}, scope(t)...)
	b.addMetadata(dir, "_"+prefix+"_"+scopeName(t))
	b.add(dir, prefix+"_"+t.Owner()+"_"+t.Domain+exampleModel)
}

func (b *builder) marts(layer, modelType string, t Tuple) {
	dir := []string{layer}
	if t.Organization != "" {
		dir = append(dir, t.Organization)
	}
	dir = append(dir, modelType, t.Domain)

	b.addMetadata(dir, "_"+modelType+"_"+scopeName(t))
	b.add(dir, modelType+"_"+t.Owner()+"_"+t.Domain+exampleModel)
}

func (b *builder) dataTests(t Tuple) {
	for _, testType := range nonBlank(b.cfg.DataTestsTypes) {
		if testType == GenericTestType {
			dir := []string{testType}
			b.add(dir, "_test_"+testType+docsSuffix)
			b.add(dir, "test_"+testType+exampleDatesTest)
			continue
		}

		dir := append([]string{testType}, scope(t)...)
		name := testType + "_" + scopeName(t)
		b.add(dir, "_test_"+name+docsSuffix)
		b.add(dir, "test_"+name+exampleTest)
	}
}

func (b *builder) seeds(t Tuple) {
	const prefix = "seed"
	dir := scope(t)
	name := prefix + "_" + scopeName(t)

	b.addMetadata(dir, "_"+name)
	b.add(dir, name+exampleSeed)
}

func (b *builder) macros(t Tuple) {
	const prefix = "macro"
	dir := scope(t)
	name := prefix + "_" + scopeName(t)

	b.addMetadata(dir, "_"+name)
	b.add(dir, name+examplePayments)

	utils := []string{MacroUtilsDir}
	utilsName := prefix + "_" + MacroUtilsDir
	b.addMetadata(utils, "_"+utilsName)
	b.add(utils, utilsName+exampleCents)

	for _, f := range RootFiles() {
		b.set.Add(joinPath(b.cfg.RootDir, f))
	}
}

// scope returns the directory segments identifying a tuple below a layer:
// the organization, when present, followed by the domain.
func scope(t Tuple) []string {
	if t.Organization != "" {
		return []string{t.Organization, t.Domain}
	}
	return []string{t.Domain}
}

func scopeName(t Tuple) string {
	return strings.Join(scope(t), "_")
}
