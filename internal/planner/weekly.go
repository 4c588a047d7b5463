package planner

import (
	"errors"

	"weekly-menu/internal/dish"
)

var (
	// ErrUnknownSlot is returned for a day or slot outside the fixed week.
	ErrUnknownSlot = errors.New("unknown day or slot")
	// ErrExcludedDish is returned when assigning a dish hidden from the planner.
	ErrExcludedDish = errors.New("dish is excluded from the planner")
	// ErrSpecialConflict is returned when another slot already holds a special dish.
	ErrSpecialConflict = errors.New("another special dish is already planned this week")
)

// DishResolver resolves the dish ids stored in plan slots.
type DishResolver interface {
	Get(id string) (dish.Dish, bool)
}

// Assignment holds the dish ids of a day's two slots. An empty id is an empty slot.
type Assignment struct {
	Primary   string
	Secondary string
}

// Get returns the dish id held by slot.
func (a Assignment) Get(slot Slot) string {
	if slot == Secondary {
		return a.Secondary
	}
	return a.Primary
}

func (a *Assignment) set(slot Slot, dishID string) {
	if slot == Secondary {
		a.Secondary = dishID
		return
	}
	a.Primary = dishID
}

// WeeklyPlan maps each weekday to a primary and a secondary dinner slot.
// At most one slot in the week may hold a special dish; the rule gates new
// assignments only and does not repair restored state. It is not safe for
// concurrent use.
type WeeklyPlan struct {
	days   map[Day]Assignment
	dishes DishResolver
}

// New returns a plan with all fourteen slots empty.
func New(dishes DishResolver) *WeeklyPlan {
	return FromSnapshot(dishes, nil)
}

// FromSnapshot restores a plan. Days missing from snapshot start empty.
func FromSnapshot(dishes DishResolver, snapshot map[Day]Assignment) *WeeklyPlan {
	p := &WeeklyPlan{days: make(map[Day]Assignment, len(Days)), dishes: dishes}
	for _, d := range Days {
		p.days[d] = snapshot[d]
	}
	return p
}

// Snapshot returns a copy of every day's assignment.
func (p *WeeklyPlan) Snapshot() map[Day]Assignment {
	out := make(map[Day]Assignment, len(p.days))
	for d, a := range p.days {
		out[d] = a
	}
	return out
}

// Get returns the dish id in a slot, or "" when empty or unknown.
func (p *WeeklyPlan) Get(day Day, slot Slot) string {
	return p.days[day].Get(slot)
}

// DishIDs returns every assigned dish id in day then slot order.
func (p *WeeklyPlan) DishIDs() []string {
	var ids []string
	for _, d := range Days {
		for _, s := range Slots {
			if id := p.days[d].Get(s); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// Assign puts a dish into a slot, replacing its previous content. An empty
// dishID clears the slot. The plan is left unchanged when the dish is unknown,
// excluded from the planner, or special while another slot holds a special dish.
func (p *WeeklyPlan) Assign(day Day, slot Slot, dishID string) error {
	if !validDay(day) || !validSlot(slot) {
		return ErrUnknownSlot
	}
	if dishID == "" {
		return p.Clear(day, slot)
	}

	d, ok := p.dishes.Get(dishID)
	if !ok {
		return dish.ErrUnknownDish
	}
	if !d.IncludeInPlanner {
		return ErrExcludedDish
	}
	if d.Special && p.HasSpecialElsewhere(day, slot) {
		return ErrSpecialConflict
	}

	a := p.days[day]
	a.set(slot, dishID)
	p.days[day] = a
	return nil
}

// Clear empties a slot.
func (p *WeeklyPlan) Clear(day Day, slot Slot) error {
	if !validDay(day) || !validSlot(slot) {
		return ErrUnknownSlot
	}
	a := p.days[day]
	a.set(slot, "")
	p.days[day] = a
	return nil
}

// Reset empties every slot of the week.
func (p *WeeklyPlan) Reset() {
	for _, d := range Days {
		p.days[d] = Assignment{}
	}
}

// ClearAllReferencing empties every slot holding dishID and reports how many changed.
func (p *WeeklyPlan) ClearAllReferencing(dishID string) int {
	if dishID == "" {
		return 0
	}
	cleared := 0
	for _, d := range Days {
		a := p.days[d]
		for _, s := range Slots {
			if a.Get(s) == dishID {
				a.set(s, "")
				cleared++
			}
		}
		p.days[d] = a
	}
	return cleared
}

// HasSpecialElsewhere reports whether any slot other than (day, slot) holds a
// special dish. Stale dish ids never count.
func (p *WeeklyPlan) HasSpecialElsewhere(day Day, slot Slot) bool {
	for _, d := range Days {
		for _, s := range Slots {
			if d == day && s == slot {
				continue
			}
			if p.isSpecial(p.days[d].Get(s)) {
				return true
			}
		}
	}
	return false
}

// SpecialCount counts the slots currently holding a special dish.
func (p *WeeklyPlan) SpecialCount() int {
	n := 0
	for _, id := range p.DishIDs() {
		if p.isSpecial(id) {
			n++
		}
	}
	return n
}

func (p *WeeklyPlan) isSpecial(dishID string) bool {
	if dishID == "" {
		return false
	}
	d, ok := p.dishes.Get(dishID)
	return ok && d.Special
}
