package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// RecordVisit increments the visit counter for a user's public portfolio
// page. The aggregation dashboard lives elsewhere; this is only the write.
func (db *DB) RecordVisit(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO portfolio_visits (user_id, count)
		 VALUES ($1, 1)
		 ON CONFLICT (user_id) DO UPDATE
		 SET count = portfolio_visits.count + 1, last_visit_at = NOW()`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

// GetVisitCount returns the total visit count for a user's portfolio page.
// Unknown users report zero.
func (db *DB) GetVisitCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := db.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(count), 0) FROM portfolio_visits WHERE user_id = $1`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to load visit count: %w", err)
	}
	return count, nil
}
