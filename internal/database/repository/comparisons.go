package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/jask/assetiq/internal/database"
)

// ComparisonRepo stores finished comparisons.
type ComparisonRepo struct {
	db *sql.DB
}

func NewComparisonRepo(db *sql.DB) *ComparisonRepo { return &ComparisonRepo{db: db} }

// Record inserts c and keeps only the newest keep rows. keep <= 0 disables pruning.
// Missing ID and CreatedAt are filled in.
func (r *ComparisonRepo) Record(ctx context.Context, c *Comparison, keep int) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = database.Now()
	}
	return database.WithTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
		INSERT INTO comparisons(id, session_id, category, instrument_a, instrument_b, response, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?);
		`, c.ID, c.SessionID, c.Category, c.InstrumentA, c.InstrumentB, c.Response, c.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("insert comparison: %w", err)
		}
		if keep <= 0 {
			return nil
		}
		if _, err := tx.ExecContext(ctx, `
		DELETE FROM comparisons WHERE id NOT IN (
			SELECT id FROM comparisons ORDER BY created_at DESC, rowid DESC LIMIT ?
		);
		`, keep); err != nil {
			return fmt.Errorf("prune comparisons: %w", err)
		}
		return nil
	})
}

// Recent lists up to limit comparisons, newest first.
func (r *ComparisonRepo) Recent(ctx context.Context, limit int) ([]Comparison, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, session_id, category, instrument_a, instrument_b, response, created_at
	FROM comparisons ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Comparison
	for rows.Next() {
		var c Comparison
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Category, &c.InstrumentA, &c.InstrumentB, &c.Response, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
