// Package workspace defines the monorepo data model: the Workspace node, the
// dependency categories a manifest may declare, and the immutable dependency
// Graph with its dependents/dependencies operations.
//
// Graph operations are deliberately single-hop: Dependents returns the direct
// consumers of a workspace and Dependencies returns its directly declared
// dependency list. Callers needing a wider blast radius compose these (see
// the affected package).
package workspace
