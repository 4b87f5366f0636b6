package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy of the catalog. Every failure returned by the catalog
// service wraps exactly one of these and is matched with errors.Is.
var (
	ErrUnauthorized      = errors.New("unauthorized")
	ErrNotFound          = errors.New("not found")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrDuplicateCategory = errors.New("category already exists")
	ErrProtectedCategory = errors.New("default category cannot be removed")
	ErrInvalidCategory   = errors.New("category does not exist")
	ErrCategoryInUse     = errors.New("category is in use")
)

var kinds = []error{
	ErrUnauthorized,
	ErrNotFound,
	ErrInvalidArgument,
	ErrDuplicateCategory,
	ErrProtectedCategory,
	ErrInvalidCategory,
	ErrCategoryInUse,
}

// Errorf wraps kind with a formatted detail message.
func Errorf(kind error, format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// KindOf returns the taxonomy error err wraps, or nil if it wraps none.
func KindOf(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
