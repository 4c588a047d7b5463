package ghost

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"weekly-menu/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// Post represents a single recipe post from the Ghost API.
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	HTML      string `json:"html"`
	UpdatedAt string `json:"updated_at"`
}

// PostsResponse is the top-level structure of the Ghost API response for posts.
type PostsResponse struct {
	Posts []Post `json:"posts"`
}

// Client is an interface for reading recipe posts from Ghost.
type Client interface {
	FetchRecipes(ctx context.Context) ([]Post, error)
}

// ghostClient is the concrete implementation of the Ghost API client.
type ghostClient struct {
	httpClient *http.Client
	config     *config.Config
}

// NewClient creates a new Ghost API client.
func NewClient(cfg *config.Config) Client {
	return &ghostClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		config:     cfg,
	}
}

// FetchRecipes lists every post carrying the configured recipe tag. With an
// admin key the Admin API is used, so drafts are included; otherwise the
// Content API sees published posts only.
func (c *ghostClient) FetchRecipes(ctx context.Context) ([]Post, error) {
	query := url.Values{}
	query.Set("limit", "all")
	query.Set("formats", "html")
	if c.config.GhostRecipeTag != "" {
		query.Set("filter", "tag:"+c.config.GhostRecipeTag)
	}

	api := "content"
	authHeader := ""
	if c.config.GhostAdminKey != "" {
		token, err := c.createAdminToken()
		if err != nil {
			return nil, fmt.Errorf("failed to create admin token: %w", err)
		}
		api = "admin"
		authHeader = "Ghost " + token
	} else {
		query.Set("key", c.config.GhostContentKey)
	}

	endpoint := fmt.Sprintf("%s/ghost/api/%s/posts/?%s", c.config.GhostURL, api, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s api error: status %d", api, resp.StatusCode)
	}

	var postsResponse PostsResponse
	if err := json.NewDecoder(resp.Body).Decode(&postsResponse); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return postsResponse.Posts, nil
}

// createAdminToken generates a short-lived JWT for the Admin API.
func (c *ghostClient) createAdminToken() (string, error) {
	id, secretHex, ok := strings.Cut(c.config.GhostAdminKey, ":")
	if !ok || id == "" {
		return "", fmt.Errorf("invalid admin key format: expected id:secret")
	}

	secret, err := hex.DecodeString(secretHex)
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": now.Unix(),
		"exp": now.Add(5 * time.Minute).Unix(),
		"aud": "/admin/",
	})
	token.Header["kid"] = id

	return token.SignedString(secret)
}
