package store

import (
	"fmt"
	"io"
	"path/filepath"
)

// Drivers understood by New.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New builds the Port selected by driver. For "file" path is a directory,
// for "sqlite" it is a directory that will hold tripboard.db.
func New(driver, path string) (Port, io.Closer, error) {
	switch driver {
	case DriverFile, "":
		s, err := NewFileStore(path)
		if err != nil {
			return nil, nil, err
		}
		return s, nopCloser{}, nil
	case DriverSQLite:
		s, err := NewSQLiteStore(filepath.Join(path, "tripboard.db"))
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case DriverMemory:
		return NewMemoryStore(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("store: unknown driver %q", driver)
	}
}
