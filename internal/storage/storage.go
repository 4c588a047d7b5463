package storage

import "context"

// Keys under which the planner keeps its three snapshots.
const (
	DishesKey = "weekly-menu-dishes"
	PlanKey   = "weekly-menu-plan"
	PantryKey = "weekly-menu-pantry"
)

// KV is the persistence port: opaque JSON snapshots stored by key.
// Load returns nil data and a nil error when the key has never been saved.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
