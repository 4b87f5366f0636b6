package redis

const (
	// KeyPrefixEntry is the prefix for entry keys
	KeyPrefixEntry = "toolshelf:entry:"
	// KeyEntries is the list of entry IDs in insertion order
	KeyEntries = "toolshelf:entries"
	// KeyCategories is the list of custom category names in insertion order
	KeyCategories = "toolshelf:categories"
	// KeyRoles is the hash caller key -> role
	KeyRoles = "toolshelf:roles"
	// KeyProfiles is the hash caller key -> profile JSON
	KeyProfiles = "toolshelf:profiles"
	// KeySeeded is the set of seed markers already applied
	KeySeeded = "toolshelf:seeded"
)

// EntryKey returns the Redis key for an entry by ID
func EntryKey(id string) string {
	return KeyPrefixEntry + id
}
