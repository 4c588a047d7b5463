package ghost

import (
	"context"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weekly-menu/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postsBody = `{
	"posts": [
		{"id": "1", "title": "Recipe 1", "html": "<h1>Recipe 1</h1>", "updated_at": "2023-10-27T10:00:00Z"},
		{"id": "2", "title": "Recipe 2", "html": "<h1>Recipe 2</h1>", "updated_at": "2023-10-28T10:00:00Z"}
	],
	"meta": {"pagination": {"page": 1, "limit": "all", "pages": 1, "total": 2}}
}`

func TestFetchRecipes(t *testing.T) {
	ctx := context.Background()

	t.Run("ContentAPI", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ghost/api/content/posts/", r.URL.Path)
			assert.Equal(t, "test_key", r.URL.Query().Get("key"))
			assert.Equal(t, "tag:recipe", r.URL.Query().Get("filter"))
			assert.Empty(t, r.Header.Get("Authorization"))
			fmt.Fprintln(w, postsBody)
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostContentKey: "test_key", GhostRecipeTag: "recipe"})

		posts, err := client.FetchRecipes(ctx)
		require.NoError(t, err)
		require.Len(t, posts, 2)
		assert.Equal(t, "Recipe 2", posts[1].Title)
	})

	t.Run("AdminAPI", func(t *testing.T) {
		secret := []byte("0123456789abcdef")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/ghost/api/admin/posts/", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("key"))

			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Ghost ")
			if !assert.True(t, ok) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			token, err := jwt.Parse(raw, func(tok *jwt.Token) (any, error) {
				assert.Equal(t, "key-id", tok.Header["kid"])
				return secret, nil
			}, jwt.WithAudience("/admin/"), jwt.WithValidMethods([]string{"HS256"}))
			if !assert.NoError(t, err) || !assert.True(t, token.Valid) {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}

			fmt.Fprintln(w, postsBody)
		}))
		defer server.Close()

		client := NewClient(&config.Config{
			GhostURL:      server.URL,
			GhostAdminKey: "key-id:" + hex.EncodeToString(secret),
		})

		posts, err := client.FetchRecipes(ctx)
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("BadAdminKey", func(t *testing.T) {
		client := NewClient(&config.Config{GhostURL: "http://unused", GhostAdminKey: "no-colon"})
		_, err := client.FetchRecipes(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid admin key format")
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := NewClient(&config.Config{GhostURL: server.URL, GhostContentKey: "test_key"})

		_, err := client.FetchRecipes(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 500")
	})
}
