package domain

import "strings"

// CategoryMisc is the fallback bucket for anything that does not match
// the canonical list.
const CategoryMisc = "Misc"

// Categories is the fixed canonical category list. Matching against it is
// case-insensitive; every other component must go through
// NormalizeCategory rather than re-implement the comparison, so the
// dashboard, budget, and comparison views always agree.
var Categories = []string{"Food", "Travel", "Bills", "Shopping", CategoryMisc}

// NormalizeCategory maps a raw category value onto the canonical list.
// Unrecognized or empty values normalize to Misc.
func NormalizeCategory(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, c) {
			return c
		}
	}
	return CategoryMisc
}

// IsCanonicalCategory reports whether raw matches the canonical list
// case-insensitively (without falling back to Misc).
func IsCanonicalCategory(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	for _, c := range Categories {
		if strings.EqualFold(trimmed, c) {
			return true
		}
	}
	return false
}
