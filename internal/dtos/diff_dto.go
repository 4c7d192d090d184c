package dtos

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadolammi/resumetailor/internal/linediff"
)

// DiffRequest carries the two full documents. Either may be empty.
type DiffRequest struct {
	Original string `json:"original"`
	Modified string `json:"modified"`
}

type DiffResponse struct {
	Changes []linediff.Change `json:"changes"`
	Stats   linediff.Stats    `json:"stats"`
	Summary string            `json:"summary"`
}

type SessionResultsResponse struct {
	SessionID     uuid.UUID       `json:"session_id"`
	Status        string          `json:"status"`
	StatusMessage string          `json:"status_message"`
	JobTitle      string          `json:"job_title"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Results       json.RawMessage `json:"results"`
}
