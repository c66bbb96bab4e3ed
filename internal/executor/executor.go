package executor

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/vk/monorun/internal/ctxlog"
	"github.com/vk/monorun/internal/workspace"
)

// Executor schedules script tasks across workspaces with bounded
// concurrency.
type Executor struct {
	repoRoot    string
	concurrency int
	spawn       Spawner

	// OnResult, when set, is invoked from the control flow for every task
	// result in completion order. The reporter hangs off this hook.
	OnResult func(Result)
}

// New creates an Executor rooted at repoRoot. The concurrency value follows
// ResolveConcurrency semantics.
func New(repoRoot string, concurrency int) *Executor {
	return &Executor{
		repoRoot:    repoRoot,
		concurrency: concurrency,
		spawn:       shellSpawner{},
	}
}

// ResolveConcurrency maps a requested concurrency limit onto an effective
// worker count: zero means the host's available parallelism, a negative
// value is a relative reduction below full parallelism floored at one, and a
// positive value is used as-is.
func ResolveConcurrency(c int) int {
	return resolveConcurrency(c, runtime.NumCPU())
}

func resolveConcurrency(c, parallelism int) int {
	switch {
	case c > 0:
		return c
	case c == 0:
		return parallelism
	default:
		if n := parallelism + c; n > 1 {
			return n
		}
		return 1
	}
}

// Run executes every requested script across every target workspace, outer
// loop over workspaces, inner loop over scripts. It blocks until all tasks
// have completed and returns the aggregate summary. Task failures are
// recorded, not propagated; they never abort the batch.
func (e *Executor) Run(ctx context.Context, targets []*workspace.Workspace, scripts []string) *Summary {
	logger := ctxlog.FromContext(ctx)
	workers := ResolveConcurrency(e.concurrency)
	logger.Debug("Executor starting batch.", "workspaces", len(targets), "scripts", len(scripts), "workers", workers)

	start := time.Now()
	taskCh := make(chan Task)
	resultCh := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go e.worker(ctx, i, taskCh, resultCh, &wg)
	}

	// Submission order is fixed; skipped tasks are resolved here and never
	// occupy a worker slot.
	go func() {
		for _, w := range targets {
			for _, request := range scripts {
				if _, ok := w.Scripts[ScriptName(request)]; !ok {
					resultCh <- Result{Workspace: w.Name, Script: request, Skipped: true}
					continue
				}
				taskCh <- Task{Workspace: w, Request: request}
			}
		}
		close(taskCh)
		wg.Wait()
		close(resultCh)
	}()

	summary := &Summary{}
	for res := range resultCh {
		if !res.Skipped {
			summary.Executed++
			if res.Failed {
				summary.Failures = append(summary.Failures, Failure{Workspace: res.Workspace, Script: res.Script})
			}
		}
		if e.OnResult != nil {
			e.OnResult(res)
		}
	}
	summary.Elapsed = time.Since(start)

	logger.Debug("Executor batch finished.", "executed", summary.Executed, "failures", len(summary.Failures), "elapsed", summary.Elapsed)
	return summary
}
