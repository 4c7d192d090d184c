package database

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Resume struct {
	ID               uuid.UUID
	OriginalFilename string
	Mime             string
	SizeBytes        int64
	ObjectKey        string
	UploadStatus     string
	CreatedAt        time.Time
	SessionID        uuid.UUID
}

type TailorSession struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Name           string
	UserID         uuid.UUID
	Status         string
	StatusMessage  string
	JobTitle       string
	JobDescription string
}

type TailoredResult struct {
	ID        uuid.UUID
	Results   json.RawMessage
	CreatedAt time.Time
	UpdatedAt time.Time
	SessionID uuid.UUID
}
