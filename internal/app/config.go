package app

import (
	"errors"
	"fmt"
)

// Commands understood by the application.
const (
	CmdList       = "list"
	CmdDeps       = "deps"
	CmdDependents = "dependents"
	CmdRun        = "run"
)

// Config holds everything one invocation needs to run.
type Config struct {
	// RepoRoot is the repository root directory holding monorun.hcl.
	RepoRoot string
	// Command is one of the Cmd* constants.
	Command string
	// Scripts are the script requests for CmdRun, in submission order.
	Scripts []string
	// Target is the seed workspace for CmdDeps/CmdDependents.
	Target string

	// Scope selects workspaces by explicit name. Mutually exclusive with All.
	Scope []string
	// All selects every known workspace.
	All bool
	// Base and Head are the git refs used when neither Scope nor All is set.
	Base string
	Head string

	// Production restricts graph traversal to production and peer edges.
	Production bool
	// Exclusive omits the seed workspace from deps/dependents listings.
	Exclusive bool
	// Concurrency is the requested concurrency cap; zero defers to the root
	// manifest and ultimately to the host's parallelism.
	Concurrency int
	// Verbose echoes captured output for successful tasks.
	Verbose bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config and applies defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.RepoRoot == "" {
		cfg.RepoRoot = "."
	}
	if cfg.Base == "" {
		cfg.Base = "origin/main"
	}
	if cfg.Head == "" {
		cfg.Head = "HEAD"
	}

	switch cfg.Command {
	case CmdList:
	case CmdRun:
		if len(cfg.Scripts) == 0 {
			return nil, errors.New("run requires at least one script name")
		}
	case CmdDeps, CmdDependents:
		if cfg.Target == "" {
			return nil, fmt.Errorf("%s requires a workspace name", cfg.Command)
		}
	default:
		return nil, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if cfg.All && len(cfg.Scope) > 0 {
		return nil, errors.New("--all and --scope are mutually exclusive")
	}

	return &cfg, nil
}
