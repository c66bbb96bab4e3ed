package workspace

// DepCategory names one of the four fixed dependency categories a workspace
// manifest may declare.
type DepCategory string

const (
	CatProduction  DepCategory = "production"
	CatDevelopment DepCategory = "development"
	CatPeer        DepCategory = "peer"
	CatOptional    DepCategory = "optional"
)

// Categories lists every dependency category in canonical order. Iteration
// over this slice, never over a map, keeps dependency ordering deterministic.
var Categories = []DepCategory{CatProduction, CatDevelopment, CatPeer, CatOptional}

// TypeFilter selects which dependency categories a graph traversal considers.
type TypeFilter int

const (
	// FilterAll traverses all four dependency categories.
	FilterAll TypeFilter = iota
	// FilterProduction traverses only the production and peer categories.
	FilterProduction
)

// Categories returns the dependency categories selected by the filter, in
// canonical order.
func (f TypeFilter) Categories() []DepCategory {
	if f == FilterProduction {
		return []DepCategory{CatProduction, CatPeer}
	}
	return Categories
}

func (f TypeFilter) String() string {
	if f == FilterProduction {
		return "production"
	}
	return "all"
}

// Workspace is one buildable unit of the monorepo. It is populated by the
// manifest loader and treated as read-only afterwards.
type Workspace struct {
	// Name is the unique identifier declared in the manifest.
	Name string
	// Dir is the workspace directory, relative to the repository root. It is
	// used for file-to-workspace ownership tests.
	Dir string
	// Scripts maps a script name to an opaque shell command string.
	Scripts map[string]string
	// Dependencies holds the declared dependency names per category.
	Dependencies map[DepCategory][]string
}

// DepNames returns the workspace's declared dependency names under the
// categories selected by the filter, concatenated in canonical category order.
func (w *Workspace) DepNames(filter TypeFilter) []string {
	var names []string
	for _, cat := range filter.Categories() {
		names = append(names, w.Dependencies[cat]...)
	}
	return names
}
