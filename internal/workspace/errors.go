package workspace

import "fmt"

// UnknownWorkspaceError reports a requested workspace name that has no node
// in the graph. It is a configuration error and aborts the invocation before
// any task is scheduled.
type UnknownWorkspaceError struct {
	Name string
}

func (e *UnknownWorkspaceError) Error() string {
	return fmt.Sprintf("unknown workspace: %q", e.Name)
}

// DuplicateNameError reports two workspace directories declaring the same
// name. Silently discarding one of them would make graph edges ambiguous, so
// construction fails fast instead.
type DuplicateNameError struct {
	Name     string
	Dir      string
	OtherDir string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("duplicate workspace name %q declared by both %s and %s", e.Name, e.OtherDir, e.Dir)
}
