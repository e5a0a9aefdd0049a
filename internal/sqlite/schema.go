// Package sqlite implements the conversion history backend. history.jsonl in
// the data directory is the source of truth; SQLite is rebuilt from it on
// every Attach and serves as the query engine.
package sqlite

// File names inside the data directory.
const (
	historyJSONL = "history.jsonl"
	historyDB    = "history.db"
)

// timeLayout is fixed-width so that created_at sorts lexically in SQLite.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Schema DDL for the history tables.
const (
	createConversions = `CREATE TABLE conversions (
    conversion_id TEXT PRIMARY KEY,
    mode TEXT NOT NULL,
    expression TEXT,
    category TEXT NOT NULL,
    from_unit TEXT NOT NULL,
    to_unit TEXT NOT NULL,
    amount REAL NOT NULL,
    result REAL NOT NULL,
    created_at TEXT NOT NULL
);`

	idxConversionsCategory = `CREATE INDEX idx_conversions_category ON conversions(category);`
	idxConversionsCreated  = `CREATE INDEX idx_conversions_created ON conversions(created_at);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createConversions,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxConversionsCategory,
	idxConversionsCreated,
}

// conversionColumns is the column order used by inserts and selects.
const conversionColumns = "conversion_id, mode, expression, category, from_unit, to_unit, amount, result, created_at"
