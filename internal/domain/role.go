package domain

import "strings"

// Role governs mutation permission. The set is closed.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

// ParseRole parses a role name (case-insensitive).
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	case RoleGuest:
		return RoleGuest, nil
	default:
		return "", Errorf(ErrInvalidArgument, "unknown role %q", s)
	}
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser || r == RoleGuest
}

// AnonymousCaller is the caller key given to requests without a credential.
const AnonymousCaller = "anonymous"

// Caller is an already-resolved caller identity.
type Caller struct {
	Key string
}

// Anonymous reports whether the caller presented no credential.
func (c Caller) Anonymous() bool {
	return c.Key == "" || c.Key == AnonymousCaller
}
