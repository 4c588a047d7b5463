package planner

import "encoding/json"

type slotsJSON struct {
	Primary   *string `json:"primary"`
	Secondary *string `json:"secondary"`
}

// ParsePlan decodes a stored plan. It never fails: a value that is not a JSON
// object yields an empty week. A bare string or null for a day is the legacy
// single-dish shape and fills the primary slot.
func ParsePlan(data []byte) map[Day]Assignment {
	plan := make(map[Day]Assignment, len(Days))
	for _, d := range Days {
		plan[d] = Assignment{}
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return plan
	}

	for _, d := range Days {
		switch v := raw[string(d)].(type) {
		case string:
			plan[d] = Assignment{Primary: v}
		case map[string]any:
			primary, _ := v["primary"].(string)
			secondary, _ := v["secondary"].(string)
			plan[d] = Assignment{Primary: primary, Secondary: secondary}
		}
	}
	return plan
}

// EncodePlan renders every weekday with null for empty slots.
func EncodePlan(plan map[Day]Assignment) ([]byte, error) {
	out := make(map[string]slotsJSON, len(Days))
	for _, d := range Days {
		a := plan[d]
		out[string(d)] = slotsJSON{Primary: nullable(a.Primary), Secondary: nullable(a.Secondary)}
	}
	return json.Marshal(out)
}

func nullable(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
