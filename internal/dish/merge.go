package dish

// MergeWithSeed overlays stored dishes onto the seed dishes by id. Seed dishes
// come first and are always default. A stored entry with a seed id replaces
// the seed content but cannot drop its default status. Stored entries with
// unknown ids are appended as user dishes. Neither input is modified.
func MergeWithSeed(stored, seed []Dish) []Dish {
	merged := make([]Dish, 0, len(seed)+len(stored))
	index := make(map[string]int, len(seed)+len(stored))
	seedIDs := make(map[string]struct{}, len(seed))

	for _, d := range seed {
		d = d.clone()
		d.IsDefault = true
		seedIDs[d.ID] = struct{}{}
		if i, ok := index[d.ID]; ok {
			merged[i] = d
			continue
		}
		index[d.ID] = len(merged)
		merged = append(merged, d)
	}

	for _, d := range stored {
		d = d.clone()
		i, ok := index[d.ID]
		if !ok {
			d.IsDefault = false
			index[d.ID] = len(merged)
			merged = append(merged, d)
			continue
		}
		_, fromSeed := seedIDs[d.ID]
		d.IsDefault = fromSeed
		merged[i] = d
	}
	return merged
}
