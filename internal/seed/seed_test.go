package seed

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"weekly-menu/internal/config"
	"weekly-menu/internal/ghost"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGhostClient struct {
	posts []ghost.Post
	err   error
	calls int
}

func (m *mockGhostClient) FetchRecipes(ctx context.Context) ([]ghost.Post, error) {
	m.calls++
	return m.posts, m.err
}

func TestDefaults(t *testing.T) {
	dishes, err := Defaults()
	require.NoError(t, err)
	require.NotEmpty(t, dishes)

	ids := make(map[string]bool)
	specials := 0
	for _, d := range dishes {
		assert.False(t, ids[d.ID], "duplicate seed id %s", d.ID)
		ids[d.ID] = true
		assert.True(t, d.IsDefault)
		assert.True(t, d.IncludeInPlanner)
		assert.NotEmpty(t, d.Ingredients, d.Name)
		if d.Special {
			specials++
		}
	}
	assert.Equal(t, 2, specials)
}

func TestParse(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		dishes, err := Parse([]byte(`
- id: s1
  name: " Stew "
  ingredients: [" Beef ", "", carrots]
  includeInPlanner: false
`))
		require.NoError(t, err)
		require.Len(t, dishes, 1)
		assert.Equal(t, "Stew", dishes[0].Name)
		assert.Equal(t, []string{"Beef", "carrots"}, dishes[0].Ingredients)
		assert.False(t, dishes[0].IncludeInPlanner)
	})

	t.Run("MissingID", func(t *testing.T) {
		_, err := Parse([]byte(`[{name: Stew}]`))
		assert.Error(t, err)
	})

	t.Run("NotYAMLList", func(t *testing.T) {
		_, err := Parse([]byte(`name: Stew`))
		assert.Error(t, err)
	})
}

func TestFromGhost(t *testing.T) {
	dishes, err := FromGhost([]ghost.Post{
		{ID: "abc", Title: "Fish pie", HTML: `<h2>Ingredients</h2><ul><li>Haddock</li><li>Mash</li></ul>`},
		{ID: "def", Title: "  "},
	})
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "ghost-abc", dishes[0].ID)
	assert.Equal(t, []string{"Haddock", "Mash"}, dishes[0].Ingredients)
	assert.True(t, dishes[0].IsDefault)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()
	logger := log.New(io.Discard)

	t.Run("EmbeddedWithoutGhost", func(t *testing.T) {
		client := &mockGhostClient{}
		dishes, err := Load(ctx, &config.Config{}, client, logger)
		require.NoError(t, err)
		assert.NotEmpty(t, dishes)
		assert.Zero(t, client.calls)
	})

	t.Run("SeedFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		require.NoError(t, os.WriteFile(path, []byte("- {id: only, name: Only}\n"), 0644))

		dishes, err := Load(ctx, &config.Config{SeedFile: path}, nil, logger)
		require.NoError(t, err)
		require.Len(t, dishes, 1)
		assert.Equal(t, "only", dishes[0].ID)
	})

	t.Run("GhostAppended", func(t *testing.T) {
		client := &mockGhostClient{posts: []ghost.Post{{ID: "1", Title: "Pho"}}}
		cfg := &config.Config{GhostURL: "http://ghost.test", GhostContentKey: "k"}

		embedded, err := Defaults()
		require.NoError(t, err)
		dishes, err := Load(ctx, cfg, client, logger)
		require.NoError(t, err)
		require.Len(t, dishes, len(embedded)+1)
		assert.Equal(t, "ghost-1", dishes[len(dishes)-1].ID)
	})

	t.Run("GhostFailureIgnored", func(t *testing.T) {
		client := &mockGhostClient{err: errors.New("down")}
		cfg := &config.Config{GhostURL: "http://ghost.test", GhostContentKey: "k"}

		embedded, err := Defaults()
		require.NoError(t, err)
		dishes, err := Load(ctx, cfg, client, logger)
		require.NoError(t, err)
		assert.Len(t, dishes, len(embedded))
	})
}
