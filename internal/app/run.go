package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/monorun/internal/affected"
	"github.com/vk/monorun/internal/ctxlog"
	"github.com/vk/monorun/internal/executor"
	"github.com/vk/monorun/internal/workspace"
)

// ErrTasksFailed signals that at least one task in a run batch failed. The
// failure details have already been reported; callers map this to a non-zero
// exit status without further output.
var ErrTasksFailed = errors.New("one or more tasks failed")

// Run executes the invocation described by cfg. Configuration-level problems
// (missing root manifest, duplicate or unknown workspace names) abort before
// any task is scheduled.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run started.", "command", cfg.Command)

	root, err := a.loader.LoadRoot(ctx, cfg.RepoRoot)
	if err != nil {
		return err
	}
	found, err := a.loader.Discover(ctx, cfg.RepoRoot, root.Roots)
	if err != nil {
		return err
	}
	graph, err := workspace.Build(found)
	if err != nil {
		return err
	}
	a.logger.Debug("Dependency graph built.", "workspaces", graph.Len())

	filter := workspace.FilterAll
	if cfg.Production {
		filter = workspace.FilterProduction
	}

	switch cfg.Command {
	case CmdDeps:
		set, err := graph.Dependencies(cfg.Target, filter, !cfg.Exclusive)
		if err != nil {
			return err
		}
		a.reporter.Workspaces(set.Names())
		return nil

	case CmdDependents:
		if _, ok := graph.Lookup(cfg.Target); !ok {
			return &workspace.UnknownWorkspaceError{Name: cfg.Target}
		}
		a.reporter.Workspaces(graph.Dependents(cfg.Target, filter, !cfg.Exclusive).Names())
		return nil

	case CmdList:
		selected, err := a.selectWorkspaces(ctx, cfg, graph)
		if err != nil {
			return err
		}
		a.reporter.Workspaces(selected.Names())
		return nil

	case CmdRun:
		selected, err := a.selectWorkspaces(ctx, cfg, graph)
		if err != nil {
			return err
		}
		return a.runScripts(ctx, cfg, root.Concurrency, graph, selected)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

// selectWorkspaces resolves the workspace set for list/run: an explicit
// scope, all known workspaces, or the set affected by the git diff.
func (a *App) selectWorkspaces(ctx context.Context, cfg *Config, graph *workspace.Graph) (*workspace.NameSet, error) {
	switch {
	case len(cfg.Scope) > 0:
		set := workspace.NewNameSet()
		for _, name := range cfg.Scope {
			if _, ok := graph.Lookup(name); !ok {
				return nil, &workspace.UnknownWorkspaceError{Name: name}
			}
			set.Add(name)
		}
		return set, nil

	case cfg.All:
		return workspace.NewNameSet(graph.Names()...), nil

	default:
		changed, err := a.Detector.ChangedFiles(ctx, cfg.Base, cfg.Head)
		if err != nil {
			return nil, err
		}
		return affected.Resolve(ctx, graph, changed), nil
	}
}

// runScripts drives the executor over the selected set and reports results.
// The concurrency cap comes from the flag when set, otherwise from the root
// manifest; zero means the host's parallelism either way.
func (a *App) runScripts(ctx context.Context, cfg *Config, rootConcurrency int, graph *workspace.Graph, selected *workspace.NameSet) error {
	concurrency := cfg.Concurrency
	if concurrency == 0 {
		concurrency = rootConcurrency
	}

	var targets []*workspace.Workspace
	for _, name := range selected.Names() {
		w, _ := graph.Lookup(name)
		targets = append(targets, w)
	}

	exec := executor.New(cfg.RepoRoot, concurrency)
	exec.OnResult = a.reporter.TaskResult
	summary := exec.Run(ctx, targets, cfg.Scripts)
	a.reporter.Summary(summary)

	if summary.Failed() {
		return ErrTasksFailed
	}
	return nil
}
