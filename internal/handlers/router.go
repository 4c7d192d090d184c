package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter wires the API routes. sessions may be nil when no database is
// configured, in which case only the stateless routes are served.
func NewRouter(diff *DiffHandler, sessions *SessionHandler) *gin.Engine {
	r := gin.Default()
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)
		api.POST("/diff", diff.Compare)

		if sessions != nil {
			api.GET("/sessions/:id/results", sessions.GetResults)
		}
	}
	return r
}
