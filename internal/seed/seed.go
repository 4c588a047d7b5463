// Package seed supplies the default dishes merged into the catalog at start.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"weekly-menu/internal/clipper"
	"weekly-menu/internal/config"
	"weekly-menu/internal/dish"
	"weekly-menu/internal/ghost"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

//go:embed default_dishes.yaml
var defaultDishes []byte

// GhostIDPrefix marks default dishes that came from a Ghost post.
const GhostIDPrefix = "ghost-"

type entry struct {
	ID               string   `yaml:"id"`
	Name             string   `yaml:"name"`
	Ingredients      []string `yaml:"ingredients"`
	Special          bool     `yaml:"special"`
	IncludeInPlanner *bool    `yaml:"includeInPlanner"`
}

// Defaults returns the embedded seed dishes.
func Defaults() ([]dish.Dish, error) {
	return Parse(defaultDishes)
}

// LoadFile reads seed dishes from a YAML file.
func LoadFile(path string) ([]dish.Dish, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML list of seed dishes. Unlike stored data, seed data is
// authored, so entries without an id or a name are errors.
func Parse(data []byte) ([]dish.Dish, error) {
	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse seed dishes: %w", err)
	}

	dishes := make([]dish.Dish, 0, len(entries))
	for i, e := range entries {
		id := strings.TrimSpace(e.ID)
		name := strings.TrimSpace(e.Name)
		if id == "" || name == "" {
			return nil, fmt.Errorf("seed dish %d needs both id and name", i+1)
		}
		include := true
		if e.IncludeInPlanner != nil {
			include = *e.IncludeInPlanner
		}
		dishes = append(dishes, dish.Dish{
			ID:               id,
			Name:             name,
			Ingredients:      dish.CleanIngredients(e.Ingredients),
			IncludeInPlanner: include,
			IsDefault:        true,
			Special:          e.Special,
		})
	}
	return dishes, nil
}

// FromGhost turns recipe posts into seed dishes. Posts without a title are skipped.
func FromGhost(posts []ghost.Post) ([]dish.Dish, error) {
	dishes := make([]dish.Dish, 0, len(posts))
	for _, post := range posts {
		name := strings.TrimSpace(post.Title)
		if name == "" || post.ID == "" {
			continue
		}
		ingredients, err := clipper.IngredientsFromHTML(post.HTML)
		if err != nil {
			return nil, fmt.Errorf("failed to read ingredients of %q: %w", name, err)
		}
		dishes = append(dishes, dish.Dish{
			ID:               GhostIDPrefix + post.ID,
			Name:             name,
			Ingredients:      ingredients,
			IncludeInPlanner: true,
			IsDefault:        true,
		})
	}
	return dishes, nil
}

// Load assembles the seed: the seed file when configured, else the embedded
// defaults, followed by Ghost recipes when Ghost is configured. A Ghost
// failure is logged and the local seed is used alone.
func Load(ctx context.Context, cfg *config.Config, client ghost.Client, logger *log.Logger) ([]dish.Dish, error) {
	var (
		dishes []dish.Dish
		err    error
	)
	if cfg.SeedFile != "" {
		dishes, err = LoadFile(cfg.SeedFile)
	} else {
		dishes, err = Defaults()
	}
	if err != nil {
		return nil, err
	}

	if client == nil || !cfg.GhostEnabled() {
		return dishes, nil
	}

	posts, err := client.FetchRecipes(ctx)
	if err != nil {
		logger.Warn("skipping Ghost seed dishes", "err", err)
		return dishes, nil
	}
	fromGhost, err := FromGhost(posts)
	if err != nil {
		logger.Warn("skipping Ghost seed dishes", "err", err)
		return dishes, nil
	}
	logger.Info("loaded seed dishes from Ghost", "count", len(fromGhost))
	return append(dishes, fromGhost...), nil
}
