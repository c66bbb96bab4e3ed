// Package gitdiff computes the list of files changed between two git refs.
// It shells out to the git binary with an explicit argument vector; the
// command runner is an interface so tests can stub git without a repository.
package gitdiff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/vk/monorun/internal/ctxlog"
)

// Runner executes a git subcommand in dir and returns its standard output
// and exit code. A non-nil error means the command could not be run at all.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (stdout string, exitCode int, err error)
}

// execRunner is the production Runner backed by os/exec.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	// stderr is intentionally discarded; git failures are reported by code.

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return out.String(), exitErr.ExitCode(), nil
		}
		return "", 0, fmt.Errorf("failed to run git %s: %w", strings.Join(args, " "), err)
	}
	return out.String(), 0, nil
}

// Detector finds the divergence point between two refs and lists the files
// that differ from it.
type Detector struct {
	repoRoot string
	run      Runner
}

// NewDetector creates a Detector for the repository at repoRoot.
func NewDetector(repoRoot string) *Detector {
	return &Detector{repoRoot: repoRoot, run: execRunner{}}
}

// NewDetectorWithRunner creates a Detector with a custom runner, for tests.
func NewDetectorWithRunner(repoRoot string, run Runner) *Detector {
	return &Detector{repoRoot: repoRoot, run: run}
}

// ChangedFiles returns the repository-relative paths that differ between the
// merge base of base/head and head. When the refs share no common ancestor
// the change list is empty: nothing comparable changed, which resolves to an
// empty affected set rather than an error.
func (d *Detector) ChangedFiles(ctx context.Context, base, head string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)

	ancestor, code, err := d.run.Run(ctx, d.repoRoot, "merge-base", base, head)
	if err != nil {
		return nil, err
	}
	if code == 1 {
		logger.Debug("Refs share no common ancestor, treating as no changes.", "base", base, "head", head)
		return nil, nil
	}
	if code != 0 {
		return nil, fmt.Errorf("git merge-base %s %s exited with code %d", base, head, code)
	}
	ancestor = strings.TrimSpace(ancestor)

	diff, code, err := d.run.Run(ctx, d.repoRoot, "diff", "--name-only", ancestor, head)
	if err != nil {
		return nil, err
	}
	if code != 0 {
		return nil, fmt.Errorf("git diff --name-only %s %s exited with code %d", ancestor, head, code)
	}

	var files []string
	for _, line := range strings.Split(diff, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			files = append(files, line)
		}
	}
	logger.Debug("Changed files computed.", "base", base, "head", head, "count", len(files))
	return files, nil
}
