package domain

// Profile is the optional display profile of a caller, independent of role.
type Profile struct {
	Name string `json:"name"`
}
