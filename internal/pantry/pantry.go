package pantry

import (
	"encoding/json"
	"errors"
	"slices"
	"strings"
)

// ErrEmptyKey is returned when an ingredient name trims to nothing.
var ErrEmptyKey = errors.New("ingredient name is empty")

// Key is the identity of an ingredient: trimmed and lower-cased.
func Key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Pantry is the set of ingredients marked available at home. It is not tied
// to any dish or day. It is not safe for concurrent use.
type Pantry struct {
	items map[string]struct{}
}

// New returns an empty pantry.
func New() *Pantry {
	return &Pantry{items: make(map[string]struct{})}
}

// SetAvailable marks or unmarks an ingredient.
func (p *Pantry) SetAvailable(name string, available bool) error {
	key := Key(name)
	if key == "" {
		return ErrEmptyKey
	}
	if available {
		p.items[key] = struct{}{}
	} else {
		delete(p.items, key)
	}
	return nil
}

// IsAvailable reports whether name is marked available, ignoring case.
func (p *Pantry) IsAvailable(name string) bool {
	_, ok := p.items[Key(name)]
	return ok
}

// Items lists the available keys in sorted order.
func (p *Pantry) Items() []string {
	keys := make([]string, 0, len(p.items))
	for k := range p.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Parse decodes the pantry schema, a map from ingredient key to boolean. It
// never fails: anything but a JSON object yields an empty pantry, and only
// entries whose value is true are kept.
func Parse(data []byte) *Pantry {
	p := New()
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return p
	}
	for name, v := range raw {
		if available, ok := v.(bool); ok && available {
			_ = p.SetAvailable(name, true)
		}
	}
	return p
}

// Encode renders the pantry schema.
func Encode(p *Pantry) ([]byte, error) {
	out := make(map[string]bool, len(p.items))
	for k := range p.items {
		out[k] = true
	}
	return json.Marshal(out)
}
