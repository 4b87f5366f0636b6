package domain

// Entry is one catalog item: a third-party tool tagged with a category.
//
// An Entry is uniquely identified by its ID, which is assigned by the
// catalog at creation time and never changes across updates.
type Entry struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the opaque, server-generated identifier.
	ID string `json:"id"`

	// ─────────────────────────────
	// Display fields
	// (replaced as a whole by an update)
	// ─────────────────────────────

	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	// URL is stored verbatim, syntax is a client concern.
	URL string `json:"url"`

	// Category is the canonical spelling of an existing category name.
	Category string `json:"category"`

	// Featured highlights the entry, independent of its category.
	Featured bool `json:"featured"`
}

// EntryInput carries every mutable field of an Entry.
// Updates use full replace semantics, so every field is always supplied.
type EntryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	URL         string `json:"url"`
	Featured    bool   `json:"featured"`
}

// ToEntry builds an Entry with the given id from the input.
func (in EntryInput) ToEntry(id string) Entry {
	return Entry{
		ID:          id,
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Icon:        in.Icon,
		URL:         in.URL,
		Featured:    in.Featured,
	}
}
