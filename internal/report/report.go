// Package report renders workspace listings, task results, and the final
// batch summary to the console. It consumes the executor's completion-order
// stream as-is and never reorders it.
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vk/monorun/internal/executor"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	dimStyle     = lipgloss.NewStyle().Faint(true)
	headerStyle  = lipgloss.NewStyle().Bold(true)
)

// Reporter writes human-readable output for one invocation.
type Reporter struct {
	out io.Writer
	// verbose echoes captured output for successful tasks as well; failed
	// task output is always shown.
	verbose bool
}

// New creates a Reporter writing to out.
func New(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, verbose: verbose}
}

// Workspaces prints a workspace name listing, one per line.
func (r *Reporter) Workspaces(names []string) {
	for _, name := range names {
		fmt.Fprintln(r.out, name)
	}
}

// TaskResult prints one completed task as it arrives.
func (r *Reporter) TaskResult(res executor.Result) {
	target := fmt.Sprintf("%s %s", res.Workspace, res.Script)
	switch {
	case res.Skipped:
		fmt.Fprintf(r.out, "%s %s %s\n", skipStyle.Render("-"), target, skipStyle.Render("(no script)"))
	case res.Failed:
		fmt.Fprintf(r.out, "%s %s %s\n", failureStyle.Render("✗"), target, dimStyle.Render(formatDuration(res.Duration)))
		if res.Output != "" {
			fmt.Fprintln(r.out, res.Output)
		}
	default:
		fmt.Fprintf(r.out, "%s %s %s\n", successStyle.Render("✓"), target, dimStyle.Render(formatDuration(res.Duration)))
		if r.verbose && res.Output != "" {
			fmt.Fprintln(r.out, res.Output)
		}
	}
}

// Summary prints the aggregate outcome after every task has completed. The
// failure list is always printed, regardless of verbosity.
func (r *Reporter) Summary(s *executor.Summary) {
	fmt.Fprintf(r.out, "\n%s %s\n",
		headerStyle.Render(fmt.Sprintf("Ran %d task(s) in %s.", s.Executed, formatDuration(s.Elapsed))),
		statusWord(s))
	if s.Failed() {
		fmt.Fprintln(r.out, failureStyle.Render("Failed tasks:"))
		for _, f := range s.Failures {
			fmt.Fprintf(r.out, "  %s\n", failureStyle.Render(f.String()))
		}
	}
}

func statusWord(s *executor.Summary) string {
	if s.Failed() {
		return failureStyle.Render(fmt.Sprintf("%d failed.", len(s.Failures)))
	}
	return successStyle.Render("All succeeded.")
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
