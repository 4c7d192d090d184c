package main

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumetailor/internal/database"
	"github.com/muhammadolammi/resumetailor/internal/linediff"
	"github.com/streadway/amqp"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
)

type R2Config struct {
	AccountID string
	Bucket    string
	AccessKey string
	SecretKey string
}

type WorkerConfig struct {
	DB                  *database.Queries
	R2                  *R2Config
	S3Client            *s3.Client
	RabbitConn          *amqp.Connection
	RABBITMQUrl         string
	AgentRunner         *runner.Runner
	AgentSessionService session.Service
	AgentName           string
}

// TailorResult is the outcome for one resume in a session. Stats is always
// derived from Changes.
type TailorResult struct {
	ResumeID          uuid.UUID         `json:"resume_id"`
	OriginalFilename  string            `json:"original_filename"`
	TailoredResume    string            `json:"tailored_resume,omitempty"`
	TailoredObjectKey string            `json:"tailored_object_key,omitempty"`
	Changes           []linediff.Change `json:"changes,omitempty"`
	Stats             linediff.Stats    `json:"stats"`
	Summary           string            `json:"summary,omitempty"`
	// Error result entry
	IsErrorResult bool   `json:"is_error_result"`
	Error         string `json:"error,omitempty"`
}

type TailorResults struct {
	SessionID uuid.UUID      `json:"session_id"`
	Results   []TailorResult `json:"results"`
}

type Session struct {
	ID             uuid.UUID `json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	Name           string    `json:"name"`
	UserID         uuid.UUID `json:"user_id"`
	Status         string    `json:"status"`
	JobTitle       string    `json:"job_title"`
	JobDescription string    `json:"job_description"`
}

type SessionUpdate struct {
	SessionID uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)
