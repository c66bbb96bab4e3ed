// Package executor runs (workspace, script) tasks as external processes
// under a bounded worker pool and aggregates their results.
//
// All submitted tasks run to completion: a failing task marks the batch
// failed but never cancels in-flight or pending work. There is no per-task
// timeout; a hung process holds its worker slot indefinitely. Results are
// delivered in completion order, and the aggregate summary is only computed
// after every task has finished.
package executor
