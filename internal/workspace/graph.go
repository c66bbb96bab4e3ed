package workspace

// Graph is the immutable workspace dependency graph. It is built once per
// invocation by Build and is read-only thereafter, so it can be shared freely
// between the resolver and the executor without synchronization.
type Graph struct {
	nodes map[string]*Workspace
	// order records discovery order so listings stay deterministic.
	order []string
}

// Build constructs a Graph from the loaded workspaces. Dependency names that
// do not refer to another workspace in the same graph are external packages
// and are pruned; they carry no edge. A name declared by two different
// directories fails with a DuplicateNameError.
func Build(workspaces []*Workspace) (*Graph, error) {
	g := &Graph{nodes: make(map[string]*Workspace, len(workspaces))}
	for _, w := range workspaces {
		if prev, ok := g.nodes[w.Name]; ok {
			return nil, &DuplicateNameError{Name: w.Name, Dir: w.Dir, OtherDir: prev.Dir}
		}
		g.nodes[w.Name] = w
		g.order = append(g.order, w.Name)
	}

	for _, w := range g.nodes {
		for cat, names := range w.Dependencies {
			kept := names[:0]
			for _, name := range names {
				if _, ok := g.nodes[name]; ok {
					kept = append(kept, name)
				}
			}
			w.Dependencies[cat] = kept
		}
	}
	return g, nil
}

// Lookup returns the workspace with the given name, if present.
func (g *Graph) Lookup(name string) (*Workspace, bool) {
	w, ok := g.nodes[name]
	return w, ok
}

// Names returns every workspace name in discovery order.
func (g *Graph) Names() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Len returns the number of workspaces in the graph.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Dependents returns the direct consumers of name: every workspace whose
// dependency list, filtered to the selected categories, contains name. The
// traversal is single-hop; consumers-of-consumers are not included. When
// inclusive is set and name exists in the graph, name itself leads the result.
func (g *Graph) Dependents(name string, filter TypeFilter, inclusive bool) *NameSet {
	result := NewNameSet()
	if inclusive {
		if _, ok := g.nodes[name]; ok {
			result.Add(name)
		}
	}
	for _, candidate := range g.order {
		w := g.nodes[candidate]
		for _, dep := range w.DepNames(filter) {
			if dep == name {
				result.Add(candidate)
				break
			}
		}
	}
	return result
}

// Dependencies returns the directly declared dependency list of name under
// the selected categories. The traversal is single-hop. When inclusive is
// set, name itself leads the result. An UnknownWorkspaceError is returned if
// name is not a graph key.
func (g *Graph) Dependencies(name string, filter TypeFilter, inclusive bool) (*NameSet, error) {
	w, ok := g.nodes[name]
	if !ok {
		return nil, &UnknownWorkspaceError{Name: name}
	}
	result := NewNameSet()
	if inclusive {
		result.Add(name)
	}
	for _, dep := range w.DepNames(filter) {
		result.Add(dep)
	}
	return result, nil
}
