package dish

import (
	"strings"

	"github.com/google/uuid"
)

// Catalog owns the household's dishes, user-created and seeded alike.
// It is not safe for concurrent use.
type Catalog struct {
	dishes []Dish
	newID  func() string
}

// NewCatalog builds a catalog from an initial list. Later entries that reuse
// an id already seen are dropped.
func NewCatalog(dishes []Dish) *Catalog {
	c := &Catalog{newID: uuid.NewString}
	seen := make(map[string]struct{}, len(dishes))
	for _, d := range dishes {
		if _, dup := seen[d.ID]; dup {
			continue
		}
		seen[d.ID] = struct{}{}
		c.dishes = append(c.dishes, d.clone())
	}
	return c
}

// List returns a copy of every dish in catalog order.
func (c *Catalog) List() []Dish {
	out := make([]Dish, 0, len(c.dishes))
	for _, d := range c.dishes {
		out = append(out, d.clone())
	}
	return out
}

// PlannerChoices returns the dishes that may be offered for assignment.
func (c *Catalog) PlannerChoices() []Dish {
	var out []Dish
	for _, d := range c.dishes {
		if d.IncludeInPlanner {
			out = append(out, d.clone())
		}
	}
	return out
}

// Get looks a dish up by id.
func (c *Catalog) Get(id string) (Dish, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.dishes[i].clone(), true
	}
	return Dish{}, false
}

// FindByName returns the first dish whose trimmed name matches, ignoring case.
func (c *Catalog) FindByName(name string) (Dish, bool) {
	name = strings.TrimSpace(name)
	for _, d := range c.dishes {
		if strings.EqualFold(d.Name, name) {
			return d.clone(), true
		}
	}
	return Dish{}, false
}

// Add creates a new user dish that is included in the planner.
func (c *Catalog) Add(name string, ingredients []string, special bool) (Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Dish{}, ErrEmptyName
	}
	d := Dish{
		ID:               c.newID(),
		Name:             name,
		Ingredients:      CleanIngredients(ingredients),
		IncludeInPlanner: true,
		Special:          special,
	}
	c.dishes = append(c.dishes, d)
	return d.clone(), nil
}

// Edit replaces the content of a dish, keeping its id and default status.
func (c *Catalog) Edit(id, name string, ingredients []string, special bool) (Dish, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Dish{}, ErrEmptyName
	}
	i := c.indexOf(id)
	if i < 0 {
		return Dish{}, ErrUnknownDish
	}
	c.dishes[i].Name = name
	c.dishes[i].Ingredients = CleanIngredients(ingredients)
	c.dishes[i].Special = special
	return c.dishes[i].clone(), nil
}

// SetSpecial flips only the special flag of a dish.
func (c *Catalog) SetSpecial(id string, special bool) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrUnknownDish
	}
	c.dishes[i].Special = special
	return nil
}

// Remove deletes a user dish. Default dishes stay. Clearing plan slots that
// still reference the dish is the caller's job.
func (c *Catalog) Remove(id string) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrUnknownDish
	}
	if c.dishes[i].IsDefault {
		return ErrDefaultDish
	}
	c.dishes = append(c.dishes[:i], c.dishes[i+1:]...)
	return nil
}

// SetIncludeInPlanner toggles whether the dish can be assigned. Excluding a
// dish obliges the caller to clear its plan slots.
func (c *Catalog) SetIncludeInPlanner(id string, include bool) error {
	i := c.indexOf(id)
	if i < 0 {
		return ErrUnknownDish
	}
	c.dishes[i].IncludeInPlanner = include
	return nil
}

func (c *Catalog) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, d := range c.dishes {
		if d.ID == id {
			return i
		}
	}
	return -1
}
