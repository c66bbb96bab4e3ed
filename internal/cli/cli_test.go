package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/monorun/internal/app"
)

func parse(t *testing.T, args ...string) (*app.Config, bool, error) {
	t.Helper()
	return Parse(args, &bytes.Buffer{})
}

func TestParse(t *testing.T) {
	t.Run("run command with scripts and flags", func(t *testing.T) {
		cfg, exit, err := parse(t,
			"-scope", "api", "-scope", "core",
			"-concurrency", "-1",
			"-verbose",
			"run", "build", "test --watch=false",
		)
		require.NoError(t, err)
		require.False(t, exit)
		assert.Equal(t, app.CmdRun, cfg.Command)
		assert.Equal(t, []string{"build", "test --watch=false"}, cfg.Scripts)
		assert.Equal(t, []string{"api", "core"}, cfg.Scope)
		assert.Equal(t, -1, cfg.Concurrency)
		assert.True(t, cfg.Verbose)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, _, err := parse(t, "list")
		require.NoError(t, err)
		assert.Equal(t, "origin/main", cfg.Base)
		assert.Equal(t, "HEAD", cfg.Head)
		assert.Equal(t, ".", cfg.RepoRoot)
		assert.False(t, cfg.All)
		assert.Empty(t, cfg.Scope)
	})

	t.Run("deps takes exactly one workspace", func(t *testing.T) {
		cfg, _, err := parse(t, "-production", "-exclusive", "deps", "core")
		require.NoError(t, err)
		assert.Equal(t, app.CmdDeps, cfg.Command)
		assert.Equal(t, "core", cfg.Target)
		assert.True(t, cfg.Production)
		assert.True(t, cfg.Exclusive)

		_, _, err = parse(t, "deps")
		requireExitCode(t, err, 2)

		_, _, err = parse(t, "deps", "a", "b")
		requireExitCode(t, err, 2)
	})

	t.Run("run without scripts is a usage error", func(t *testing.T) {
		_, _, err := parse(t, "run")
		requireExitCode(t, err, 2)
	})

	t.Run("all and scope are mutually exclusive", func(t *testing.T) {
		_, _, err := parse(t, "-all", "-scope", "api", "list")
		requireExitCode(t, err, 2)
	})

	t.Run("unknown command", func(t *testing.T) {
		_, _, err := parse(t, "frobnicate")
		requireExitCode(t, err, 2)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := parse(t, "-log-level", "loud", "list")
		requireExitCode(t, err, 2)
	})

	t.Run("no arguments prints usage and exits cleanly", func(t *testing.T) {
		out := &bytes.Buffer{}
		_, exit, err := Parse(nil, out)
		require.NoError(t, err)
		assert.True(t, exit)
		assert.Contains(t, out.String(), "Usage:")
	})
}

func requireExitCode(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, code, exitErr.Code)
}
