package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/monorun/internal/manifest"
	"github.com/vk/monorun/internal/workspace"
)

// fixtureRepo writes a small monorepo: app depends on lib (production), lib
// depends on nothing, tools is only a development dependency of app.
func fixtureRepo(t *testing.T) string {
	t.Helper()
	repo := t.TempDir()

	write := func(rel, content string) {
		path := filepath.Join(repo, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	write("monorun.hcl", `roots = ["packages"]`)
	write("packages/app/workspace.hcl", `
workspace "app" {
  scripts = {
    build = "echo building app"
    fail  = "echo app broke >&2; exit 1"
  }
  dependencies {
    production  = ["lib"]
    development = ["tools"]
  }
}
`)
	write("packages/lib/workspace.hcl", `
workspace "lib" {
  scripts = {
    build = "echo building lib"
  }
}
`)
	write("packages/tools/workspace.hcl", `
workspace "tools" {}
`)
	return repo
}

// stubDetector returns a fixed changed-file list.
type stubDetector struct {
	files []string
	err   error
}

func (s stubDetector) ChangedFiles(context.Context, string, string) ([]string, error) {
	return s.files, s.err
}

func newTestApp(t *testing.T, repo string, cfg *Config) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	a := NewApp(out, &bytes.Buffer{}, cfg, manifest.NewLoader())
	return a, out
}

func mustConfig(t *testing.T, cfg Config) *Config {
	t.Helper()
	c, err := NewConfig(cfg)
	require.NoError(t, err)
	return c
}

func TestListCommand(t *testing.T) {
	ctx := context.Background()
	repo := fixtureRepo(t)

	t.Run("all workspaces in discovery order", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdList, All: true})
		a, out := newTestApp(t, repo, cfg)
		require.NoError(t, a.Run(ctx, cfg))
		assert.Equal(t, "app\nlib\ntools\n", out.String())
	})

	t.Run("affected by a change to lib", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdList})
		a, out := newTestApp(t, repo, cfg)
		a.Detector = stubDetector{files: []string{"packages/lib/lib.go"}}
		require.NoError(t, a.Run(ctx, cfg))
		assert.Equal(t, "lib\napp\n", out.String())
	})

	t.Run("no changes resolves to an empty set", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdList})
		a, out := newTestApp(t, repo, cfg)
		a.Detector = stubDetector{}
		require.NoError(t, a.Run(ctx, cfg))
		assert.Empty(t, out.String())
	})

	t.Run("unknown scope name aborts", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdList, Scope: []string{"nope"}})
		a, _ := newTestApp(t, repo, cfg)
		err := a.Run(ctx, cfg)
		var unknown *workspace.UnknownWorkspaceError
		require.ErrorAs(t, err, &unknown)
	})
}

func TestDepsCommands(t *testing.T) {
	ctx := context.Background()
	repo := fixtureRepo(t)

	t.Run("deps inclusive", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdDeps, Target: "app"})
		a, out := newTestApp(t, repo, cfg)
		require.NoError(t, a.Run(ctx, cfg))
		assert.Equal(t, "app\nlib\ntools\n", out.String())
	})

	t.Run("deps with production filter drops development edges", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdDeps, Target: "app", Production: true, Exclusive: true})
		a, out := newTestApp(t, repo, cfg)
		require.NoError(t, a.Run(ctx, cfg))
		assert.Equal(t, "lib\n", out.String())
	})

	t.Run("dependents", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdDependents, Target: "lib", Exclusive: true})
		a, out := newTestApp(t, repo, cfg)
		require.NoError(t, a.Run(ctx, cfg))
		assert.Equal(t, "app\n", out.String())
	})

	t.Run("dependents of unknown workspace aborts", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdDependents, Target: "ghost"})
		a, _ := newTestApp(t, repo, cfg)
		var unknown *workspace.UnknownWorkspaceError
		require.ErrorAs(t, a.Run(ctx, cfg), &unknown)
	})
}

func TestRunCommand(t *testing.T) {
	ctx := context.Background()
	repo := fixtureRepo(t)

	t.Run("runs scripts and skips workspaces without them", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdRun, All: true, Scripts: []string{"build"}, Verbose: true})
		a, out := newTestApp(t, repo, cfg)
		require.NoError(t, a.Run(ctx, cfg))

		text := out.String()
		assert.Contains(t, text, "building app")
		assert.Contains(t, text, "building lib")
		assert.Contains(t, text, "Ran 2 task(s)")
		assert.Contains(t, text, "(no script)")
	})

	t.Run("one failing task fails the batch but all tasks run", func(t *testing.T) {
		cfg := mustConfig(t, Config{RepoRoot: repo, Command: CmdRun, All: true, Scripts: []string{"fail", "build"}})
		a, out := newTestApp(t, repo, cfg)

		err := a.Run(ctx, cfg)
		require.ErrorIs(t, err, ErrTasksFailed)

		text := out.String()
		assert.Contains(t, text, "app broke", "failed task output is always printed")
		assert.Contains(t, text, "Failed tasks:")
		assert.Contains(t, text, "app:fail")
		assert.Contains(t, text, "Ran 3 task(s)", "lib's build still ran despite app's failure")
	})

	t.Run("duplicate workspace names abort before scheduling", func(t *testing.T) {
		dup := fixtureRepo(t)
		require.NoError(t, os.MkdirAll(filepath.Join(dup, "packages", "lib2"), 0o755))
		require.NoError(t, os.WriteFile(
			filepath.Join(dup, "packages", "lib2", "workspace.hcl"),
			[]byte("workspace \"lib\" {}\n"), 0o644))

		cfg := mustConfig(t, Config{RepoRoot: dup, Command: CmdRun, All: true, Scripts: []string{"build"}})
		a, out := newTestApp(t, dup, cfg)

		err := a.Run(ctx, cfg)
		var dupErr *workspace.DuplicateNameError
		require.ErrorAs(t, err, &dupErr)
		assert.Empty(t, out.String(), "nothing may run after a configuration error")
	})
}

func TestNewConfigValidation(t *testing.T) {
	_, err := NewConfig(Config{Command: CmdRun})
	assert.ErrorContains(t, err, "at least one script")

	_, err = NewConfig(Config{Command: "bogus"})
	assert.ErrorContains(t, err, "unknown command")

	_, err = NewConfig(Config{Command: CmdList, All: true, Scope: []string{"x"}})
	assert.ErrorContains(t, err, "mutually exclusive")

	cfg, err := NewConfig(Config{Command: CmdList})
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.RepoRoot)
	assert.Equal(t, "origin/main", cfg.Base)
	assert.Equal(t, "HEAD", cfg.Head)
}
