package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	httpHandler "chat-relay/internal/pkg/chat/presentation/http"
)

// New assembles the gin engine: recovery, CORS for the single configured
// origin, the upgrade guard, a health probe and the chat routes.
func New(d httpHandler.Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(d.AllowedOrigin))
	r.Use(upgradeGuard("/ws"))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	httpHandler.RegisterRoutes(r, d)
	return r
}
