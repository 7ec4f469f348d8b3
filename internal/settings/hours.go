package settings

import (
	"encoding/json"
	"sort"
	"strings"
)

// DayHours is one line of the opening hours table.
type DayHours struct {
	Day    string
	Hours  string
	Closed bool
}

var weekDays = []string{ //nolint:gochecknoglobals
	"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche", "lundi_vendredi",
}

var dayLabels = map[string]string{ //nolint:gochecknoglobals
	"lundi":          "Lundi",
	"mardi":          "Mardi",
	"mercredi":       "Mercredi",
	"jeudi":          "Jeudi",
	"vendredi":       "Vendredi",
	"samedi":         "Samedi",
	"dimanche":       "Dimanche",
	"lundi_vendredi": "Lundi - Vendredi",
}

// DefaultOpeningHours is shown when opening_hours is missing or unreadable.
func DefaultOpeningHours() map[string]string {
	return map[string]string{
		"lundi":    "8h - 18h",
		"mardi":    "8h - 18h",
		"mercredi": "8h - 18h",
		"jeudi":    "8h - 18h",
		"vendredi": "8h - 18h",
		"samedi":   "8h - 18h",
		"dimanche": "Fermé",
	}
}

// OpeningHours turns the opening_hours setting, a JSON object or its text,
// into table lines. Week days come first in calendar order, other keys
// follow A-Z.
func OpeningHours(v any) []DayHours {
	hours := map[string]string{}

	switch t := v.(type) {
	case map[string]any:
		for k, h := range t {
			if s, ok := h.(string); ok {
				hours[k] = s
			}
		}
	case string:
		if err := json.Unmarshal([]byte(t), &hours); err != nil {
			hours = nil
		}
	}

	if len(hours) == 0 {
		hours = DefaultOpeningHours()
	}

	out := make([]DayHours, 0, len(hours))

	for _, day := range weekDays {
		if h, ok := hours[day]; ok {
			out = append(out, dayHours(day, h))
			delete(hours, day)
		}
	}

	rest := make([]string, 0, len(hours))
	for k := range hours {
		rest = append(rest, k)
	}

	sort.Strings(rest)

	for _, k := range rest {
		out = append(out, dayHours(k, hours[k]))
	}

	return out
}

func dayHours(key, hours string) DayHours {
	label, ok := dayLabels[key]
	if !ok {
		label = strings.ReplaceAll(key, "_", " ")
	}

	lower := strings.ToLower(hours)

	return DayHours{
		Day:    label,
		Hours:  hours,
		Closed: strings.Contains(lower, "ferm") || strings.Contains(lower, "closed"),
	}
}
