package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/portfolio-builder/internal/types"
)

// SavePortfolio upserts the canonical portfolio document for a user.
func (db *DB) SavePortfolio(ctx context.Context, userID uuid.UUID, portfolio *types.PortfolioData) error {
	data, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO portfolios (user_id, data)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET data = $2, updated_at = NOW()`,
		userID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to save portfolio: %w", err)
	}
	return nil
}

// GetPortfolio loads a user's portfolio. Returns (nil, nil) when the user has
// no saved portfolio yet.
func (db *DB) GetPortfolio(ctx context.Context, userID uuid.UUID) (*types.PortfolioData, error) {
	var data []byte
	err := db.pool.QueryRow(ctx,
		`SELECT data FROM portfolios WHERE user_id = $1`,
		userID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load portfolio: %w", err)
	}

	var portfolio types.PortfolioData
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portfolio: %w", err)
	}
	return &portfolio, nil
}
