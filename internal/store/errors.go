package store

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row is absent or excluded by the
	// requested visibility filter.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned on unique-constraint violations so callers
	// can retry (e.g. regenerate a slug) or surface a domain conflict.
	ErrDuplicate = errors.New("duplicate record")
)

// Translate maps GORM errors onto the store taxonomy. Requires the
// connection to be opened with TranslateError so driver-specific
// constraint errors arrive as gorm.ErrDuplicatedKey.
func Translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
