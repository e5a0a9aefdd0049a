// Package sqlite provides the public constructor for the SQLite-backed
// conversion history while keeping the implementation internal.
package sqlite

import (
	"github.com/mesh-intelligence/measures/internal/sqlite"
	"github.com/mesh-intelligence/measures/pkg/types"
)

// NewHistory creates a new SQLite history backend.
// The backend is not attached; call Attach with a Config to initialize.
//
// Example:
//
//	h := sqlite.NewHistory()
//	err := h.Attach(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".measures-db",
//	})
//	defer h.Detach()
func NewHistory() types.HistoryLog {
	return sqlite.NewBackend()
}
