package seed

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

// Mapper converts a seed File to catalog.Seed
type Mapper struct{}

// NewMapper creates a new mapper instance
func NewMapper() *Mapper {
	return &Mapper{}
}

// Map converts a File. Every entry group name becomes a category, so a
// group does not need to be listed under categories as well.
func (m *Mapper) Map(file File) (catalog.Seed, error) {
	seed := catalog.Seed{
		Admins: trimmed(file.Admins),
	}

	seen := make(map[string]bool)
	addCategory := func(name string) {
		display, key := domain.NormalizeCategory(name)
		if key == "" || seen[key] || domain.IsDefaultCategory(key) {
			return
		}
		seen[key] = true
		seed.Categories = append(seed.Categories, display)
	}

	for _, name := range file.Categories {
		addCategory(name)
	}

	for _, groupMap := range file.Entries {
		for category, entries := range groupMap {
			if strings.TrimSpace(category) == "" {
				return catalog.Seed{}, fmt.Errorf("entry group without a category name")
			}
			addCategory(category)

			for _, entryMap := range entries {
				for name, props := range entryMap {
					in := domain.EntryInput{
						Name:        strings.TrimSpace(name),
						Description: strings.TrimSpace(props.Description),
						Category:    category,
						Icon:        strings.TrimSpace(props.Icon),
						URL:         props.Href,
						Featured:    props.Featured,
					}
					if err := domain.ValidateEntryInput(in); err != nil {
						return catalog.Seed{}, fmt.Errorf("entry %q in %q: %w", name, category, err)
					}
					seed.Entries = append(seed.Entries, in)
				}
			}
		}
	}

	return seed, nil
}

func trimmed(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
