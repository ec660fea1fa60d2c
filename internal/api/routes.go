package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter returns a gin engine with the deck API mounted under /api.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(s.logger), gin.Recovery())
	RegisterRoutes(r, s)
	return r
}

func RegisterRoutes(r *gin.Engine, s *Server) {
	api := r.Group("/api")
	{
		api.GET("/health", s.health)
		api.POST("/deck", s.generateDeck)
		api.GET("/deck/:id", s.getDeck)
		api.DELETE("/deck/:id", s.deleteDeck)
		api.GET("/code/decode", s.decodeCode)
		api.GET("/code/qr", s.qrHandler)
		api.POST("/code/image", s.deckImageHandler)
		api.POST("/cards/filter", s.filterHandler)
	}
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}
