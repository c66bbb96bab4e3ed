package manifest

import "github.com/hashicorp/hcl/v2"

// rootFile represents the top-level structure of monorun.hcl.
type rootFile struct {
	// Roots lists the directories, relative to the repository root, whose
	// immediate subdirectories are candidate workspaces.
	Roots []string `hcl:"roots"`
	// Concurrency is the default concurrency cap for run commands. Zero (the
	// default) resolves to the host's available parallelism.
	Concurrency int `hcl:"concurrency,optional"`
}

// workspaceFile represents the top-level structure of a workspace.hcl.
type workspaceFile struct {
	Workspace *workspaceBlock `hcl:"workspace,block"`
}

// workspaceBlock is the single `workspace "<name>" { ... }` block.
type workspaceBlock struct {
	Name string `hcl:"name,label"`
	// Scripts is kept as an expression so the loader can evaluate and
	// type-check it as a string-to-string mapping itself.
	Scripts      hcl.Expression     `hcl:"scripts,optional"`
	Dependencies *dependenciesBlock `hcl:"dependencies,block"`
}

// dependenciesBlock declares the four fixed dependency categories.
type dependenciesBlock struct {
	Production  []string `hcl:"production,optional"`
	Development []string `hcl:"development,optional"`
	Peer        []string `hcl:"peer,optional"`
	Optional    []string `hcl:"optional,optional"`
}
