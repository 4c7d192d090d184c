package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/muhammadolammi/resumetailor/internal/database"
	"github.com/muhammadolammi/resumetailor/internal/dtos"
)

// SessionStore is the read side of the worker's tables.
type SessionStore interface {
	GetTailorSession(ctx context.Context, id uuid.UUID) (database.TailorSession, error)
	GetTailoredResultsBySession(ctx context.Context, sessionID uuid.UUID) (database.TailoredResult, error)
}

type SessionHandler struct {
	DB SessionStore
}

func NewSessionHandler(db SessionStore) *SessionHandler {
	return &SessionHandler{DB: db}
}

// GetResults is the GET /sessions/:id/results endpoint. Results stay null
// until the worker has stored them.
func (h *SessionHandler) GetResults(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session id"})
		return
	}

	ctx := c.Request.Context()
	s, err := h.DB.GetTailorSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	if err != nil {
		log.Printf("⚠️ Failed to load session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load session"})
		return
	}

	resp := dtos.SessionResultsResponse{
		SessionID:     s.ID,
		Status:        s.Status,
		StatusMessage: s.StatusMessage,
		JobTitle:      s.JobTitle,
		UpdatedAt:     s.UpdatedAt,
	}

	results, err := h.DB.GetTailoredResultsBySession(ctx, id)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		log.Printf("⚠️ Failed to load results for session %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load results"})
		return
	default:
		resp.Results = results.Results
	}

	c.JSON(http.StatusOK, resp)
}
