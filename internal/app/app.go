package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"weekly-menu/internal/clipper"
	"weekly-menu/internal/dish"
	"weekly-menu/internal/metrics"
	"weekly-menu/internal/pantry"
	"weekly-menu/internal/planner"
	"weekly-menu/internal/shopping"
	"weekly-menu/internal/storage"

	"github.com/charmbracelet/log"
)

// Store labels used in metrics and logs.
const (
	storeCatalog = "catalog"
	storePlan    = "plan"
	storePantry  = "pantry"
)

// App is the household's single logical actor. It owns the catalog, the
// weekly plan and the pantry, and saves each store after every change it
// commits. Save failures are logged and counted, never returned: the
// in-memory change stands.
type App struct {
	mu      sync.Mutex
	kv      storage.KV
	catalog *dish.Catalog
	plan    *planner.WeeklyPlan
	pantry  *pantry.Pantry
	metrics *metrics.Recorder
	logger  *log.Logger
}

// Load restores the three stores from kv and merges the seed dishes into the
// catalog. Malformed snapshots fall back to empty stores; only a failing
// read is an error.
func Load(ctx context.Context, kv storage.KV, seed []dish.Dish, recorder *metrics.Recorder, logger *log.Logger) (*App, error) {
	dishData, err := kv.Load(ctx, storage.DishesKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load dishes: %w", err)
	}
	planData, err := kv.Load(ctx, storage.PlanKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load plan: %w", err)
	}
	pantryData, err := kv.Load(ctx, storage.PantryKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}

	catalog := dish.NewCatalog(dish.MergeWithSeed(dish.ParseDishes(dishData), seed))
	a := &App{
		kv:      kv,
		catalog: catalog,
		plan:    planner.FromSnapshot(catalog, planner.ParsePlan(planData)),
		pantry:  pantry.Parse(pantryData),
		metrics: recorder,
		logger:  logger,
	}
	logger.Debug("state loaded", "dishes", len(catalog.List()), "planned", len(a.plan.DishIDs()), "pantry", len(a.pantry.Items()))
	return a, nil
}

// Dishes lists the catalog in order.
func (a *App) Dishes() []dish.Dish {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.catalog.List()
}

// FindDish resolves a reference typed by a person: an exact id, or a name
// compared without case.
func (a *App) FindDish(ref string) (dish.Dish, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if d, ok := a.catalog.Get(strings.TrimSpace(ref)); ok {
		return d, true
	}
	return a.catalog.FindByName(ref)
}

// AddDish creates a user dish.
func (a *App) AddDish(ctx context.Context, name string, ingredients []string, special bool) (dish.Dish, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, err := a.catalog.Add(name, ingredients, special)
	if err != nil {
		return dish.Dish{}, a.reject("add", err)
	}
	a.commit(ctx, storeCatalog, "add")
	a.logger.Info("dish added", "dish", d.ID, "name", d.Name)
	return d, nil
}

// EditDish replaces a dish's name, ingredients and special flag.
func (a *App) EditDish(ctx context.Context, id, name string, ingredients []string, special bool) (dish.Dish, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	d, err := a.catalog.Edit(id, name, ingredients, special)
	if err != nil {
		return dish.Dish{}, a.reject("edit", err)
	}
	a.commit(ctx, storeCatalog, "edit")
	return d, nil
}

// Clipper reads a dish draft from a recipe page.
type Clipper interface {
	ClipURL(ctx context.Context, url string) (*clipper.Draft, error)
}

// Import clips url and adds the result as a user dish. The page is fetched
// before the App is locked.
func (a *App) Import(ctx context.Context, c Clipper, url string) (dish.Dish, error) {
	draft, err := c.ClipURL(ctx, url)
	if err != nil {
		a.metrics.Rejection("import", "clip_failed")
		return dish.Dish{}, fmt.Errorf("failed to clip %s: %w", url, err)
	}
	d, err := a.AddDish(ctx, draft.Name, draft.Ingredients, false)
	if err != nil {
		return dish.Dish{}, err
	}
	a.logger.Info("dish imported", "dish", d.ID, "url", draft.SourceURL, "ingredients", len(d.Ingredients))
	return d, nil
}

// SetSpecial changes only the special flag of a dish.
func (a *App) SetSpecial(ctx context.Context, id string, special bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.catalog.SetSpecial(id, special); err != nil {
		return a.reject("special", err)
	}
	a.commit(ctx, storeCatalog, "special")
	return nil
}

// RemoveDish deletes a user dish, then clears the plan slots that held it.
// The two steps are saved separately; a plan left pointing at the deleted
// dish is harmless because stale ids are ignored everywhere.
func (a *App) RemoveDish(ctx context.Context, id string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.catalog.Remove(id); err != nil {
		return a.reject("remove", err)
	}
	a.commit(ctx, storeCatalog, "remove")
	a.clearReferences(ctx, id)
	a.logger.Info("dish removed", "dish", id)
	return nil
}

// SetIncludeInPlanner shows or hides a dish in the planner. Hiding it clears
// every slot that held it.
func (a *App) SetIncludeInPlanner(ctx context.Context, id string, include bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.catalog.SetIncludeInPlanner(id, include); err != nil {
		return a.reject("include", err)
	}
	a.commit(ctx, storeCatalog, "include")
	if !include {
		a.clearReferences(ctx, id)
	}
	return nil
}

func (a *App) clearReferences(ctx context.Context, id string) {
	if n := a.plan.ClearAllReferencing(id); n > 0 {
		a.commit(ctx, storePlan, "cascade")
		a.logger.Debug("cleared plan slots", "dish", id, "slots", n)
	}
}

// SlotView is one plan slot with its dish resolved for display. DishName is
// empty for an empty slot or a stale reference.
type SlotView struct {
	DishID   string
	DishName string
	Special  bool
}

// DayView is one day of the plan.
type DayView struct {
	Day       planner.Day
	Primary   SlotView
	Secondary SlotView
}

// Week returns the plan in weekday order with dish names resolved.
func (a *App) Week() []DayView {
	a.mu.Lock()
	defer a.mu.Unlock()

	week := make([]DayView, 0, len(planner.Days))
	for _, day := range planner.Days {
		week = append(week, DayView{
			Day:       day,
			Primary:   a.slotView(a.plan.Get(day, planner.Primary)),
			Secondary: a.slotView(a.plan.Get(day, planner.Secondary)),
		})
	}
	return week
}

func (a *App) slotView(id string) SlotView {
	v := SlotView{DishID: id}
	if d, ok := a.catalog.Get(id); ok {
		v.DishName = d.Name
		v.Special = d.Special
	}
	return v
}

// Choice is a dish offered for a slot. Disabled marks a special dish that
// cannot be chosen because another slot already holds a special dish.
type Choice struct {
	Dish     dish.Dish
	Disabled bool
}

// Choices lists the planner dishes for a slot.
func (a *App) Choices(day planner.Day, slot planner.Slot) []Choice {
	a.mu.Lock()
	defer a.mu.Unlock()

	blocked := a.plan.HasSpecialElsewhere(day, slot)
	var choices []Choice
	for _, d := range a.catalog.PlannerChoices() {
		choices = append(choices, Choice{Dish: d, Disabled: d.Special && blocked})
	}
	return choices
}

// Assign puts a dish into a plan slot; an empty id clears it.
func (a *App) Assign(ctx context.Context, day planner.Day, slot planner.Slot, dishID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.plan.Assign(day, slot, dishID); err != nil {
		return a.reject("assign", err)
	}
	a.commit(ctx, storePlan, "assign")
	return nil
}

// ClearSlot empties a plan slot.
func (a *App) ClearSlot(ctx context.Context, day planner.Day, slot planner.Slot) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.plan.Clear(day, slot); err != nil {
		return a.reject("clear", err)
	}
	a.commit(ctx, storePlan, "clear")
	return nil
}

// ResetPlan empties the whole week.
func (a *App) ResetPlan(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.plan.Reset()
	a.commit(ctx, storePlan, "reset")
}

// SetAvailable marks an ingredient as at home or not.
func (a *App) SetAvailable(ctx context.Context, ingredient string, available bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.pantry.SetAvailable(ingredient, available); err != nil {
		return a.reject("pantry", err)
	}
	a.commit(ctx, storePantry, "set")
	return nil
}

// Pantry lists the ingredient keys marked available.
func (a *App) Pantry() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pantry.Items()
}

// ShoppingList aggregates the ingredients of the planned week.
func (a *App) ShoppingList() []shopping.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return shopping.Aggregate(a.catalog, a.plan)
}

// ToBuy is the shopping list without what is already at home.
func (a *App) ToBuy() []shopping.Item {
	a.mu.Lock()
	defer a.mu.Unlock()
	return shopping.FilterToBuy(shopping.Aggregate(a.catalog, a.plan), a.pantry)
}

// commit records a mutation and saves the store it touched.
func (a *App) commit(ctx context.Context, store, op string) {
	a.metrics.Mutation(store, op)

	var (
		key  string
		data []byte
		err  error
	)
	switch store {
	case storeCatalog:
		key = storage.DishesKey
		data, err = dish.EncodeDishes(a.catalog.List())
	case storePlan:
		key = storage.PlanKey
		data, err = planner.EncodePlan(a.plan.Snapshot())
	case storePantry:
		key = storage.PantryKey
		data, err = pantry.Encode(a.pantry)
	}
	if err == nil {
		err = a.kv.Save(ctx, key, data)
	}
	if err != nil {
		a.metrics.PersistFailure(key)
		a.logger.Warn("failed to persist snapshot", "key", key, "op", op, "err", err)
	}
}

func (a *App) reject(op string, err error) error {
	reason := rejectionReason(err)
	a.metrics.Rejection(op, reason)
	a.logger.Debug("operation rejected", "op", op, "reason", reason)
	return err
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, dish.ErrEmptyName):
		return "empty_name"
	case errors.Is(err, dish.ErrUnknownDish):
		return "unknown_dish"
	case errors.Is(err, dish.ErrDefaultDish):
		return "default_dish"
	case errors.Is(err, planner.ErrUnknownSlot):
		return "unknown_slot"
	case errors.Is(err, planner.ErrExcludedDish):
		return "excluded_dish"
	case errors.Is(err, planner.ErrSpecialConflict):
		return "special_conflict"
	case errors.Is(err, pantry.ErrEmptyKey):
		return "empty_key"
	}
	return "other"
}
