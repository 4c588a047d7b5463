package dish

import (
	"errors"
	"strings"
)

var (
	// ErrEmptyName is returned when a dish name trims to nothing.
	ErrEmptyName = errors.New("dish name is empty")
	// ErrUnknownDish is returned when no dish has the given id.
	ErrUnknownDish = errors.New("unknown dish")
	// ErrDefaultDish is returned when removing a seed dish.
	ErrDefaultDish = errors.New("default dishes cannot be removed")
)

// Dish is a reusable dinner option in the household catalog.
type Dish struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Ingredients      []string `json:"ingredients"`
	IncludeInPlanner bool     `json:"includeInPlanner"`
	IsDefault        bool     `json:"isDefault"`
	Special          bool     `json:"special"`
}

func (d Dish) clone() Dish {
	d.Ingredients = append([]string{}, d.Ingredients...)
	return d
}

// SplitIngredients turns comma-separated text into a clean ingredient list.
func SplitIngredients(text string) []string {
	return CleanIngredients(strings.Split(text, ","))
}

// CleanIngredients trims every entry and drops the empty ones.
func CleanIngredients(ingredients []string) []string {
	cleaned := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if ing = strings.TrimSpace(ing); ing != "" {
			cleaned = append(cleaned, ing)
		}
	}
	return cleaned
}
