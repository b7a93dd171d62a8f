package storage

import (
	"lmsadmin/internal/logger"
)

// log is the package-level logger for storage operations.
var log = logger.Default()

// SetLogger sets the logger for all storage operations.
// This should be called before opening a store.
func SetLogger(l *logger.Logger) {
	if l != nil {
		log = l.With("component", "storage")
	}
}

// Logger returns the storage logger with the given subcomponent.
func Logger(subcomponent string) *logger.Logger {
	return log.With("subcomponent", subcomponent)
}
