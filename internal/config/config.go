package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config holds the configuration for the application.
type Config struct {
	StoreBackend string
	DatabasePath string
	DataDir      string
	SeedFile     string
	LogLevel     string

	// Ghost is an optional source of default dishes.
	GhostURL        string
	GhostContentKey string
	GhostAdminKey   string
	GhostRecipeTag  string

	// Telegram Config
	TelegramBotToken       string
	TelegramWebhookURL     string
	TelegramAllowedUserIDs []int64
	AdminTelegramID        int64
	Port                   string
}

// NewFromEnv creates a new Config object from environment variables.
func NewFromEnv() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("STORE_BACKEND", BackendSQLite)
	v.SetDefault("DATABASE_PATH", "data/weekly-menu.db")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("GHOST_RECIPE_TAG", "recipe")
	v.SetDefault("PORT", "8080")

	backend := strings.ToLower(strings.TrimSpace(v.GetString("STORE_BACKEND")))
	if backend != BackendSQLite && backend != BackendFile {
		return nil, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendFile, backend)
	}

	allowed, err := parseIDList(v.GetString("TELEGRAM_ALLOWED_USER_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_ALLOWED_USER_IDS: %w", err)
	}

	var adminID int64
	if raw := strings.TrimSpace(v.GetString("ADMIN_TELEGRAM_ID")); raw != "" {
		adminID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
		}
	}

	ghostContentKey := v.GetString("GHOST_CONTENT_API_KEY")
	ghostAdminKey := v.GetString("GHOST_ADMIN_API_KEY")
	ghostURL := strings.TrimRight(v.GetString("GHOST_API_URL"), "/")
	if ghostURL != "" && ghostContentKey == "" && ghostAdminKey == "" {
		return nil, fmt.Errorf("GHOST_API_URL is set but neither GHOST_CONTENT_API_KEY nor GHOST_ADMIN_API_KEY is")
	}

	return &Config{
		StoreBackend:           backend,
		DatabasePath:           v.GetString("DATABASE_PATH"),
		DataDir:                v.GetString("DATA_DIR"),
		SeedFile:               v.GetString("SEED_FILE"),
		LogLevel:               v.GetString("LOG_LEVEL"),
		GhostURL:               ghostURL,
		GhostContentKey:        ghostContentKey,
		GhostAdminKey:          ghostAdminKey,
		GhostRecipeTag:         v.GetString("GHOST_RECIPE_TAG"),
		TelegramBotToken:       v.GetString("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:     v.GetString("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedUserIDs: allowed,
		AdminTelegramID:        adminID,
		Port:                   v.GetString("PORT"),
	}, nil
}

// GhostEnabled reports whether default dishes should also come from Ghost.
func (c *Config) GhostEnabled() bool {
	return c.GhostURL != ""
}

// ValidateTelegram checks the settings only the bot needs.
func (c *Config) ValidateTelegram() error {
	if c.TelegramBotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable not set")
	}
	if c.TelegramWebhookURL == "" {
		return fmt.Errorf("TELEGRAM_WEBHOOK_URL environment variable not set")
	}
	if len(c.TelegramAllowedUserIDs) == 0 {
		return fmt.Errorf("TELEGRAM_ALLOWED_USER_IDS environment variable not set")
	}
	return nil
}

func parseIDList(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
