package executor

import (
	"strings"
	"time"

	"github.com/vk/monorun/internal/workspace"
)

// Task is one (workspace, script request) pair. A request's leading token
// selects the manifest script; any trailing tokens are passed through to the
// process as extra arguments.
type Task struct {
	Workspace *workspace.Workspace
	Request   string
}

// ScriptName returns the leading token of a script request.
func ScriptName(request string) string {
	fields := strings.Fields(request)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// extraArgs returns the trailing tokens of a script request.
func extraArgs(request string) []string {
	fields := strings.Fields(request)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// Result is the outcome of a single task.
type Result struct {
	// Workspace is the workspace name.
	Workspace string
	// Script is the full script request, extra arguments included.
	Script string
	// Skipped is set when the workspace does not define the script. A
	// skipped task spawned no process and counts toward nothing.
	Skipped bool
	// Failed is set when the process exited non-zero or could not be
	// spawned.
	Failed bool
	// ExitCode is the process exit code; meaningful only when a process ran.
	ExitCode int
	// Output is the combined, whitespace-trimmed stdout and stderr.
	Output string
	// Duration is wall-clock time from spawn to exit.
	Duration time.Duration
}

// Failure identifies a failed task in the final summary.
type Failure struct {
	Workspace string
	Script    string
}

func (f Failure) String() string {
	return f.Workspace + ":" + f.Script
}

// Summary aggregates a whole batch. It is produced only after every
// submitted task has completed.
type Summary struct {
	// Elapsed is the batch wall-clock time.
	Elapsed time.Duration
	// Executed counts tasks that spawned a process; skipped tasks are
	// excluded.
	Executed int
	// Failures lists failed tasks in completion order. Empty means the
	// batch succeeded.
	Failures []Failure
}

// Failed reports whether any task in the batch failed.
func (s *Summary) Failed() bool {
	return len(s.Failures) > 0
}
