package storage

import "errors"

// Sentinel errors of the storage layer. Implementations wrap them with
// details, so callers match with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidInput also covers unknown sort keys and filters.
	ErrInvalidInput     = errors.New("invalid input")
	ErrMigrationFailed  = errors.New("migration failed")
	ErrChecksumMismatch = errors.New("migration checksum mismatch")
	ErrClosed           = errors.New("storage is closed")
)

// IsNotFound reports whether err is or wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
