// Package backup provides database backup and restore.
package backup

import (
	"time"
)

// Metadata holds information about a backup.
type Metadata struct {
	// ID is the unique backup identifier
	ID string `json:"id" yaml:"id"`

	// Timestamp is when the backup was created
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`

	// SchemaVersion is the migration version of the copied database
	SchemaVersion uint `json:"schema_version" yaml:"schema_version"`

	// Size is the backup size in bytes
	Size int64 `json:"size" yaml:"size"`

	// Path is the backup file
	Path string `json:"path" yaml:"path"`

	// IntegrityHash is the SHA-256 hash of the backup
	IntegrityHash string `json:"integrity_hash" yaml:"integrity_hash"`

	// Compression is how the file is stored, empty for a plain copy
	Compression string `json:"compression,omitempty" yaml:"compression,omitempty"`

	// Notes are optional user notes
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Config holds backup configuration.
type Config struct {
	// Dir is the backup directory
	Dir string

	// MaxBackups is the maximum number of backups to keep, 0 keeps all
	MaxBackups int

	// Verify checks the hash of a backup after creating it
	Verify bool

	// Compress stores backups as zstd streams
	Compress bool
}

// RestoreOptions holds options for restore operations.
type RestoreOptions struct {
	// BackupID is the backup to restore
	BackupID string

	// VerifyBefore verifies backup integrity before restore
	VerifyBefore bool
}
