package utils

import (
	"encoding/json"
	"strings"
)

// ListToString converts []string to JSON string (safe for DB)
func ListToString(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(items)
	return string(data)
}

// StringToList converts DB string back to []string
func StringToList(s string) []string {
	if s == "" || s == "[]" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		// Fallback: treat as comma-separated if invalid JSON
		return strings.Split(s, ",")
	}
	return items
}

// ContainsFold reports whether items holds v, ignoring case and surrounding space.
func ContainsFold(items []string, v string) bool {
	v = strings.TrimSpace(v)
	for _, it := range items {
		if strings.EqualFold(strings.TrimSpace(it), v) {
			return true
		}
	}
	return false
}
