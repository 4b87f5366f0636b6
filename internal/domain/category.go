package domain

import "strings"

// Built-in categories. They exist from start-up and can never be removed.
const (
	CategoryImage        = "image"
	CategoryText         = "text"
	CategoryAudio        = "audio"
	CategoryVideo        = "video"
	CategoryProductivity = "productivity"
)

// DefaultCategories lists the built-in categories in display order.
var DefaultCategories = []string{
	CategoryImage,
	CategoryText,
	CategoryAudio,
	CategoryVideo,
	CategoryProductivity,
}

// Category is a named grouping of entries.
type Category struct {
	Name string `json:"name"`

	// IsDefault is derived from DefaultCategories, never stored.
	IsDefault bool `json:"isDefault"`
}

// NewCategory returns a Category with IsDefault computed from its name.
func NewCategory(name string) Category {
	return Category{Name: name, IsDefault: IsDefaultCategory(name)}
}

// NormalizeCategory returns the trimmed display name and the lowercase key
// used for case-insensitive comparisons.
func NormalizeCategory(name string) (display, key string) {
	display = strings.TrimSpace(name)
	return display, strings.ToLower(display)
}

// IsDefaultCategory reports whether name (any case) is a built-in category.
func IsDefaultCategory(name string) bool {
	_, key := NormalizeCategory(name)
	for _, c := range DefaultCategories {
		if c == key {
			return true
		}
	}
	return false
}
