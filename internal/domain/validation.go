package domain

import "strings"

// ValidateEntryInput checks the fields that must be non-blank.
// Category existence is checked by the catalog, not here.
func ValidateEntryInput(in EntryInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return Errorf(ErrInvalidArgument, "name is required")
	case strings.TrimSpace(in.Description) == "":
		return Errorf(ErrInvalidArgument, "description is required")
	case strings.TrimSpace(in.Icon) == "":
		return Errorf(ErrInvalidArgument, "icon is required")
	}
	return nil
}

// ValidateProfile checks that a profile has a display name.
func ValidateProfile(p Profile) error {
	if strings.TrimSpace(p.Name) == "" {
		return Errorf(ErrInvalidArgument, "profile name is required")
	}
	return nil
}
