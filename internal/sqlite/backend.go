package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// Backend implements types.HistoryLog using SQLite as the query engine and
// history.jsonl as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	dataDir  string
	db       *sql.DB

	// now is overridden in tests.
	now func() time.Time
}

var _ types.HistoryLog = (*Backend)(nil)

// NewBackend creates a new history backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach validates config, creates DataDir if needed, rebuilds the SQLite
// database from history.jsonl, and marks the backend attached.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// The database is a cache of the JSONL file; start fresh.
	dbPath := filepath.Join(dataDir, historyDB)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("create schema: %w", err)
		}
	}

	if err := ensureJSONL(filepath.Join(dataDir, historyJSONL)); err != nil {
		db.Close()
		return err
	}
	if _, err := loadHistoryJSONL(db, dataDir); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.dataDir = dataDir
	b.attached = true
	return nil
}

// Detach closes the SQLite connection. After Detach, all operations return
// ErrHistoryDetached. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}
	b.attached = false
	return nil
}

// DataDir returns the directory the backend is attached to, or "" when
// detached.
func (b *Backend) DataDir() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return ""
	}
	return b.dataDir
}

// persistLocked rewrites history.jsonl from the conversions table as seen by
// tx. The caller must hold b.mu and commits tx only when this succeeds, so
// the table and the file never diverge.
func (b *Backend) persistLocked(tx *sql.Tx) error {
	rows, err := tx.Query("SELECT " + conversionColumns + " FROM conversions ORDER BY created_at ASC, conversion_id ASC")
	if err != nil {
		return fmt.Errorf("querying conversions for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return err
		}
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("marshaling conversion %s: %w", c.ConversionID, err)
		}
		records = append(records, data)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating conversions: %w", err)
	}
	return writeJSONL(filepath.Join(b.dataDir, historyJSONL), records)
}

// generateUUID generates a new UUID v7 for conversion IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
