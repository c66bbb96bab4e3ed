package executor

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/vk/monorun/internal/ctxlog"
)

// worker is the processing loop for a single concurrent worker. It drains
// the task channel and emits one result per task, in completion order.
func (e *Executor) worker(ctx context.Context, workerID int, tasks <-chan Task, results chan<- Result, wg *sync.WaitGroup) {
	defer wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for task := range tasks {
		taskLogger := logger.With("workerID", workerID, "workspace", task.Workspace.Name, "script", task.Request)
		taskLogger.Debug("Worker picked up task.")
		res := e.runTask(ctx, task)
		if res.Failed {
			taskLogger.Debug("Task failed.", "exitCode", res.ExitCode, "duration", res.Duration)
		} else {
			taskLogger.Debug("Task succeeded.", "duration", res.Duration)
		}
		results <- res
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// runTask spawns the task's process in the workspace directory and waits for
// it. A process that cannot be started at all is a task failure like any
// other; it never aborts the batch.
func (e *Executor) runTask(ctx context.Context, task Task) Result {
	command := task.Workspace.Scripts[ScriptName(task.Request)]
	dir := filepath.Join(e.repoRoot, filepath.FromSlash(task.Workspace.Dir))

	start := time.Now()
	output, exitCode, err := e.spawn.Spawn(ctx, dir, command, extraArgs(task.Request))
	duration := time.Since(start)

	res := Result{
		Workspace: task.Workspace.Name,
		Script:    task.Request,
		ExitCode:  exitCode,
		Output:    output,
		Duration:  duration,
	}
	if err != nil {
		res.Failed = true
		res.Output = err.Error()
		return res
	}
	res.Failed = exitCode != 0
	return res
}
