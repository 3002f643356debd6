package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveResume stores an uploaded resume document and returns its ID.
func (db *DB) SaveResume(ctx context.Context, userID uuid.UUID, filename string, content []byte) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, filename, content)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		userID, filename, content,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save resume: %w", err)
	}
	return id, nil
}

// GetResume loads a stored resume document. Returns (nil, nil) when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	var r Resume
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, filename, content, created_at
		 FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.UserID, &r.Filename, &r.Content, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}
	return &r, nil
}

// ListResumes returns resume metadata (no content) for a user, newest first.
func (db *DB) ListResumes(ctx context.Context, userID uuid.UUID) ([]ResumeInfo, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, created_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var out []ResumeInfo
	for rows.Next() {
		var info ResumeInfo
		if err := rows.Scan(&info.ID, &info.Filename, &info.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan resume row: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate resumes: %w", err)
	}
	return out, nil
}
