package configs

import (
	"fmt"
	"strings"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Store selects where campaign records are persisted.
type Store struct {
	Backend string `env:"BACKEND" envDefault:"sqlite"`
}

// Kind returns the normalised backend name or an error for unknown values.
func (c Store) Kind() (string, error) {
	switch b := strings.ToLower(strings.TrimSpace(c.Backend)); b {
	case BackendMemory, BackendPostgres, BackendSQLite:
		return b, nil
	default:
		return "", fmt.Errorf("unknown store backend %q", c.Backend)
	}
}
