package validation

import "strings"

// Violations maps a form field to the messages of every constraint it
// violated.
type Violations map[string][]string

func (v Violations) Add(field, msg string) { v[field] = append(v[field], msg) }

func (v Violations) Empty() bool { return len(v) == 0 }

// Basic validators
func Required(field, value, msg string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, msg)
	}
}

func GreaterThan(field string, val, minVal float64, msg string, v Violations) {
	if val <= minVal {
		v.Add(field, msg)
	}
}

func OneOf(field, value string, allowed []string, msg string, v Violations) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.Add(field, msg)
}
