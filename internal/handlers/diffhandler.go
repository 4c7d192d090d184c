package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/muhammadolammi/resumetailor/internal/dtos"
	"github.com/muhammadolammi/resumetailor/internal/linediff"
)

const defaultMaxDiffBodyBytes = 2 << 20

type DiffHandler struct {
	// MaxBodyBytes caps the request body of Compare.
	MaxBodyBytes int64
}

func NewDiffHandler() *DiffHandler {
	return &DiffHandler{MaxBodyBytes: defaultMaxDiffBodyBytes}
}

// Compare diffs two documents posted as JSON and returns the change records.
func (h *DiffHandler) Compare(c *gin.Context) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxDiffBodyBytes
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	var req dtos.DiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result := linediff.Compare(req.Original, req.Modified)
	c.JSON(http.StatusOK, dtos.DiffResponse{
		Changes: result.Changes,
		Stats:   result.Stats,
		Summary: linediff.Summary(result.Stats),
	})
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
