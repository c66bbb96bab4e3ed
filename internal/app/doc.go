// Package app wires the monorun pipeline together: it loads the root
// manifest, discovers workspaces, builds the dependency graph, resolves the
// selected workspace set, and either lists it or hands it to the executor.
package app
