package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Spawner launches one external process for a task and waits for it to exit.
// It returns the combined stdout+stderr text and the exit code. A non-nil
// error means the process could not be started at all.
type Spawner interface {
	Spawn(ctx context.Context, dir, command string, extraArgs []string) (output string, exitCode int, err error)
}

// shellSpawner runs the manifest's command string through sh. The command
// string is trusted configuration; extra arguments from the script request
// are handed over as positional parameters, never interpolated into the
// command text, so request tokens containing shell metacharacters stay inert.
type shellSpawner struct{}

func (shellSpawner) Spawn(ctx context.Context, dir, command string, extraArgs []string) (string, int, error) {
	args := append([]string{"-c", command + ` "$@"`, "sh"}, extraArgs...)
	cmd := exec.CommandContext(ctx, "sh", args...)
	cmd.Dir = dir

	// Both streams share one buffer; interleaving between them is
	// implementation-defined.
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	output := strings.TrimSpace(buf.String())
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, exitErr.ExitCode(), nil
		}
		return output, 0, err
	}
	return output, 0, nil
}
