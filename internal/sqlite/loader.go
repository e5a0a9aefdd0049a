package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/measures/pkg/types"
)

// loadHistoryJSONL reads history.jsonl and inserts every valid record into
// the conversions table in one transaction. Malformed lines, records that
// fail validation, and duplicate IDs are skipped. Unknown fields are ignored.
func loadHistoryJSONL(db *sql.DB, dataDir string) (int, error) {
	records, err := readJSONL(filepath.Join(dataDir, historyJSONL))
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(insertConversionSQL)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	loaded := 0
	for _, rec := range records {
		var c types.Conversion
		if err := json.Unmarshal(rec, &c); err != nil {
			continue
		}
		if c.ConversionID == "" || c.Validate() != nil {
			continue
		}
		if _, err := stmt.Exec(conversionArgs(c)...); err != nil {
			continue
		}
		loaded++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing load transaction: %w", err)
	}
	return loaded, nil
}
