package affected

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/monorun/internal/workspace"
)

// chainGraph builds {A deps:[B], B deps:[C], C deps:[]} under the production
// category, with one directory per workspace.
func chainGraph(t *testing.T) *workspace.Graph {
	t.Helper()
	g, err := workspace.Build([]*workspace.Workspace{
		{Name: "A", Dir: "packages/a", Dependencies: map[workspace.DepCategory][]string{workspace.CatProduction: {"B"}}},
		{Name: "B", Dir: "packages/b", Dependencies: map[workspace.DepCategory][]string{workspace.CatProduction: {"C"}}},
		{Name: "C", Dir: "packages/c", Dependencies: map[workspace.DepCategory][]string{}},
	})
	require.NoError(t, err)
	return g
}

func TestResolve(t *testing.T) {
	ctx := context.Background()

	t.Run("change under C affects C and its direct dependent only", func(t *testing.T) {
		got := Resolve(ctx, chainGraph(t), []string{"packages/c/lib/util.go"})
		assert.Equal(t, []string{"C", "B"}, got.Names())
		assert.False(t, got.Has("A"), "dependents are single-hop")
	})

	t.Run("files outside every workspace are ignored", func(t *testing.T) {
		got := Resolve(ctx, chainGraph(t), []string{"README.md", "tools/gen.sh"})
		assert.Zero(t, got.Len())
	})

	t.Run("empty change list yields an empty set", func(t *testing.T) {
		got := Resolve(ctx, chainGraph(t), nil)
		assert.Zero(t, got.Len())
	})

	t.Run("prefix match respects the separator boundary", func(t *testing.T) {
		g, err := workspace.Build([]*workspace.Workspace{
			{Name: "foo", Dir: "packages/foo"},
			{Name: "foobar", Dir: "packages/foo-bar"},
		})
		require.NoError(t, err)

		got := Resolve(ctx, g, []string{"packages/foo-bar/main.go"})
		assert.Equal(t, []string{"foobar"}, got.Names())
	})

	t.Run("deduplicates files in the same workspace", func(t *testing.T) {
		got := Resolve(ctx, chainGraph(t), []string{
			"packages/b/x.go",
			"packages/b/y.go",
			"packages/c/z.go",
		})
		// B is touched first, so it leads; C's dependent B is already present.
		assert.Equal(t, []string{"B", "A", "C"}, got.Names())
	})

	t.Run("idempotent for the same inputs", func(t *testing.T) {
		g := chainGraph(t)
		changed := []string{"packages/c/z.go", "packages/a/x.go"}
		first := Resolve(ctx, g, changed)
		second := Resolve(ctx, g, changed)
		assert.Equal(t, first.Names(), second.Names())
	})
}
