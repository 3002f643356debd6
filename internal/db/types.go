package db

import (
	"time"

	"github.com/google/uuid"
)

// Resume is a stored resume document.
type Resume struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Filename  string    `json:"filename"`
	Content   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ResumeInfo is resume metadata without the document bytes.
type ResumeInfo struct {
	ID        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	CreatedAt time.Time `json:"created_at"`
}
