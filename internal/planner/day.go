package planner

import "strings"

// Day is one of the seven named weekdays of the plan.
type Day string

const (
	Monday    Day = "Monday"
	Tuesday   Day = "Tuesday"
	Wednesday Day = "Wednesday"
	Thursday  Day = "Thursday"
	Friday    Day = "Friday"
	Saturday  Day = "Saturday"
	Sunday    Day = "Sunday"
)

// Days lists the weekdays in plan order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Slot names one of the two dinner positions of a day.
type Slot string

const (
	Primary   Slot = "primary"
	Secondary Slot = "secondary"
)

// Slots lists the slots of a day in plan order.
var Slots = []Slot{Primary, Secondary}

// ParseDay accepts a full weekday name or its three-letter abbreviation, in any case.
func ParseDay(s string) (Day, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	for _, d := range Days {
		name := strings.ToLower(string(d))
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, true
		}
	}
	return "", false
}

// ParseSlot accepts "primary"/"secondary" or their first letter.
func ParseSlot(s string) (Slot, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "p", "1":
		return Primary, true
	case "secondary", "s", "2":
		return Secondary, true
	}
	return "", false
}

func validDay(d Day) bool {
	for _, day := range Days {
		if day == d {
			return true
		}
	}
	return false
}

func validSlot(s Slot) bool {
	return s == Primary || s == Secondary
}
