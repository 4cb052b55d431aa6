package db

import (
	"encoding/json"
	"fmt"
)

// Storage drivers accepted by OpenBackend
const (
	DriverSQLite = "sqlite3"
	DriverGorm   = "gorm"
)

// Backend is a durable store of named, JSON-encoded state slices.
// Each slice is an independent key; nothing is transactional across slices.
type Backend interface {
	Save(name string, value any) error
	Load(name string, dst any) error
	Names() ([]string, error)
	Raw(name string) (json.RawMessage, error)
	Close() error
}

// OpenBackend opens the slice store for driver at path
func OpenBackend(driver, path string) (Backend, error) {
	switch driver {
	case "", DriverSQLite:
		return Open(path)
	case DriverGorm:
		return OpenGorm(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

var (
	_ Backend = (*DB)(nil)
	_ Backend = (*GormDB)(nil)
)
