package dish

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// ParseDishes decodes a stored dish list. It never fails: anything that is
// not a JSON array yields an empty list, and entries without a usable name
// are dropped. Missing ids are regenerated.
func ParseDishes(data []byte) []Dish {
	var raw []any
	if err := json.Unmarshal(data, &raw); err != nil {
		return []Dish{}
	}

	dishes := make([]Dish, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		d := Dish{
			ID:               stringField(fields, "id"),
			Name:             strings.TrimSpace(stringField(fields, "name")),
			Ingredients:      ingredientsField(fields),
			IncludeInPlanner: boolField(fields, "includeInPlanner", true),
			IsDefault:        boolField(fields, "isDefault", false),
			Special:          boolField(fields, "special", false),
		}
		if d.Name == "" {
			continue
		}
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		dishes = append(dishes, d)
	}
	return dishes
}

// EncodeDishes renders the dish list schema.
func EncodeDishes(dishes []Dish) ([]byte, error) {
	out := make([]Dish, 0, len(dishes))
	for _, d := range dishes {
		if d.Ingredients == nil {
			d.Ingredients = []string{}
		}
		out = append(out, d)
	}
	return json.Marshal(out)
}

func stringField(fields map[string]any, name string) string {
	s, _ := fields[name].(string)
	return s
}

func boolField(fields map[string]any, name string, fallback bool) bool {
	if b, ok := fields[name].(bool); ok {
		return b
	}
	return fallback
}

func ingredientsField(fields map[string]any) []string {
	list, ok := fields["ingredients"].([]any)
	if !ok {
		return []string{}
	}
	ingredients := make([]string, 0, len(list))
	for _, v := range list {
		if s, ok := v.(string); ok {
			ingredients = append(ingredients, s)
		}
	}
	return CleanIngredients(ingredients)
}
