// Package manifest reads the HCL configuration that declares the monorepo's
// shape: the root manifest (monorun.hcl) naming the workspace root
// directories, and the per-workspace manifests (workspace.hcl) declaring each
// workspace's name, scripts, and dependency lists.
//
// A missing or unparsable root manifest is fatal. A malformed per-workspace
// manifest is not: the directory is simply not a workspace and is skipped.
package manifest
