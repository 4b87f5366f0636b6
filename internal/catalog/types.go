package catalog

import "github.com/MrSnakeDoc/toolshelf/internal/domain"

// ChangeKind names a mutation recorded in the journal.
type ChangeKind string

const (
	ChangePutEntry       ChangeKind = "put_entry"
	ChangeDeleteEntry    ChangeKind = "delete_entry"
	ChangeAddCategory    ChangeKind = "add_category"
	ChangeRemoveCategory ChangeKind = "remove_category"
	ChangeSetRole        ChangeKind = "set_role"
	ChangeSetProfile     ChangeKind = "set_profile"
	ChangeSeedMark       ChangeKind = "seed_mark"
)

// Change is one applied mutation.
//
// Key holds the entry ID, the category name, the caller key or the seed
// marker depending on Kind. Created is set on the first put of an entry.
type Change struct {
	Kind    ChangeKind
	Key     string
	Entry   domain.Entry
	Created bool
	Role    domain.Role
	Profile domain.Profile
}

// Snapshot is the full catalog state, used to restore the Service.
type Snapshot struct {
	Entries    []domain.Entry
	Categories []string // custom categories only, in insertion order
	Roles      map[string]domain.Role
	Profiles   map[string]domain.Profile
	Seeded     []string // seed items already applied, see Import
}

// Stats summarizes collection sizes.
type Stats struct {
	Entries    int `json:"entries"`
	Categories int `json:"categories"`
	Admins     int `json:"admins"`
	Profiles   int `json:"profiles"`
}

// CategoryCount is the number of entries in one category.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Seed is out-of-band initial data applied once at start-up.
type Seed struct {
	Admins     []string
	Categories []string
	Entries    []domain.EntryInput
}
