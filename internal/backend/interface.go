package backend

import (
	"context"

	"donations/internal/sources"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// HealthFunc reports whether the backing store is reachable.
type HealthFunc func(ctx context.Context) error

// BackendResult contains the loader plus optional cleanup and health check
type BackendResult struct {
	Loader      sources.DatasetLoader
	Cleanup     CleanupFunc
	HealthCheck HealthFunc
}

// Factory creates dataset loaders based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for loader creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Google Sheets specific
	GoogleSpreadsheetID       string
	GoogleCategoriesSheetName string
	GoogleDonationsSheetName  string

	// Memory backend specific
	DataDirectory string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	SheetsBackend BackendType = "sheets"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, SheetsBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
