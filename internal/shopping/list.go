package shopping

import (
	"slices"
	"strings"

	"weekly-menu/internal/dish"
	"weekly-menu/internal/pantry"
)

// Item is one aggregated ingredient with the number of planned dishes needing it.
type Item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Key is the case-insensitive identity of the item.
func (i Item) Key() string {
	return pantry.Key(i.Name)
}

// DishSource resolves dish ids to dishes.
type DishSource interface {
	Get(id string) (dish.Dish, bool)
}

// PlanSource lists the dish ids assigned across the week.
type PlanSource interface {
	DishIDs() []string
}

// Availability reports which ingredients are already at home.
type Availability interface {
	IsAvailable(name string) bool
}

// Aggregate tallies the ingredients of every planned dish. Ingredients are
// grouped case-insensitively and keep the casing first seen. Stale dish ids
// are skipped. Items are sorted by name ignoring case, then by exact name.
func Aggregate(dishes DishSource, plan PlanSource) []Item {
	var items []Item
	index := make(map[string]int)

	for _, id := range plan.DishIDs() {
		d, ok := dishes.Get(id)
		if !ok {
			continue
		}
		for _, ing := range d.Ingredients {
			name := strings.TrimSpace(ing)
			key := pantry.Key(name)
			if key == "" {
				continue
			}
			if i, seen := index[key]; seen {
				items[i].Count++
				continue
			}
			index[key] = len(items)
			items = append(items, Item{Name: name, Count: 1})
		}
	}

	slices.SortFunc(items, compareItems)
	return items
}

// FilterToBuy drops the items already available at home, keeping order.
func FilterToBuy(items []Item, available Availability) []Item {
	toBuy := make([]Item, 0, len(items))
	for _, it := range items {
		if available != nil && available.IsAvailable(it.Name) {
			continue
		}
		toBuy = append(toBuy, it)
	}
	return toBuy
}

func compareItems(a, b Item) int {
	if c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)); c != 0 {
		return c
	}
	return strings.Compare(a.Name, b.Name)
}
