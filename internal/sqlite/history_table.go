package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/measures/pkg/types"
)

const insertConversionSQL = "INSERT INTO conversions (" + conversionColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"

// conversionArgs returns the insert arguments for c in column order.
func conversionArgs(c types.Conversion) []any {
	var expr any
	if c.Expression != "" {
		expr = c.Expression
	}
	return []any{
		c.ConversionID,
		c.Mode,
		expr,
		c.Category,
		c.FromUnit,
		c.ToUnit,
		c.Amount,
		c.Result,
		c.CreatedAt.UTC().Format(timeLayout),
	}
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanConversion reads one conversions row in column order.
func scanConversion(s scanner) (types.Conversion, error) {
	var (
		c         types.Conversion
		expr      sql.NullString
		createdAt string
	)
	if err := s.Scan(&c.ConversionID, &c.Mode, &expr, &c.Category, &c.FromUnit, &c.ToUnit, &c.Amount, &c.Result, &createdAt); err != nil {
		return types.Conversion{}, fmt.Errorf("scanning conversion: %w", err)
	}
	c.Expression = expr.String
	t, err := time.Parse(timeLayout, createdAt)
	if err != nil {
		return types.Conversion{}, fmt.Errorf("parsing created_at %q: %w", createdAt, err)
	}
	c.CreatedAt = t
	return c, nil
}

// Record stores c and persists history.jsonl. When c.ConversionID is empty
// a UUID v7 is generated; a zero CreatedAt is set to the current time.
// Returns the ID used.
func (b *Backend) Record(c types.Conversion) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return "", types.ErrHistoryDetached
	}
	if err := c.Validate(); err != nil {
		return "", err
	}
	if c.ConversionID == "" {
		c.ConversionID = generateUUID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = b.now()
	}
	c.CreatedAt = c.CreatedAt.UTC()

	tx, err := b.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(insertConversionSQL, conversionArgs(c)...); err != nil {
		return "", fmt.Errorf("inserting conversion: %w", err)
	}
	if err := b.persistLocked(tx); err != nil {
		return "", fmt.Errorf("persisting history: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing conversion: %w", err)
	}
	return c.ConversionID, nil
}

// List returns recorded conversions, newest first, optionally restricted to
// one category and limited in count. A non-positive limit returns all rows.
func (b *Backend) List(filter types.HistoryFilter) ([]types.Conversion, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrHistoryDetached
	}

	var (
		query strings.Builder
		args  []any
	)
	query.WriteString("SELECT " + conversionColumns + " FROM conversions")
	if filter.Category != "" {
		query.WriteString(" WHERE category = ?")
		args = append(args, filter.Category)
	}
	query.WriteString(" ORDER BY created_at DESC, conversion_id DESC")
	if filter.Limit > 0 {
		query.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}

	rows, err := b.db.Query(query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	out := []types.Conversion{}
	for rows.Next() {
		c, err := scanConversion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversions: %w", err)
	}
	return out, nil
}

// Clear deletes every conversion and truncates history.jsonl.
func (b *Backend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrHistoryDetached
	}
	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM conversions"); err != nil {
		return fmt.Errorf("deleting conversions: %w", err)
	}
	if err := b.persistLocked(tx); err != nil {
		return err
	}
	return tx.Commit()
}
