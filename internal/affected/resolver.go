// Package affected maps a changed-file list onto the workspace graph. A file
// touches the workspace whose directory contains it; the affected set is the
// union of each touched workspace's direct dependents, seed included.
package affected

import (
	"context"
	"strings"

	"github.com/vk/monorun/internal/ctxlog"
	"github.com/vk/monorun/internal/workspace"
)

// Resolve computes the affected set for the given changed file paths. Paths
// are repository-relative, slash-separated. Files owned by no workspace are
// ignored. The result's order follows the order in which workspaces were
// first discovered as touched, which keeps output deterministic for a given
// change list.
func Resolve(ctx context.Context, g *workspace.Graph, changedFiles []string) *workspace.NameSet {
	logger := ctxlog.FromContext(ctx)

	touched := workspace.NewNameSet()
	for _, file := range changedFiles {
		if name, ok := owner(g, file); ok {
			if touched.Add(name) {
				logger.Debug("Changed file touches workspace.", "file", file, "workspace", name)
			}
		}
	}

	result := workspace.NewNameSet()
	for _, name := range touched.Names() {
		result.AddAll(g.Dependents(name, workspace.FilterAll, true))
	}
	logger.Debug("Affected set resolved.", "touched", touched.Len(), "affected", result.Len())
	return result
}

// owner returns the name of the workspace whose directory contains file.
// Containment is tested on a path-separator boundary so a workspace at
// "packages/foo" does not own "packages/foo-bar/main.go". Workspace
// directories are disjoint by construction, so at most one workspace matches.
func owner(g *workspace.Graph, file string) (string, bool) {
	for _, name := range g.Names() {
		w, _ := g.Lookup(name)
		if strings.HasPrefix(file, w.Dir+"/") {
			return name, true
		}
	}
	return "", false
}
