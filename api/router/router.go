package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"refdeck/api/handlers"
	"refdeck/api/middleware"
	"refdeck/db"
	"refdeck/dto"
	"refdeck/services"
)

func New(svc *services.ReferenceService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestTrace(), gin.Recovery())

	// Slack posts slash commands; anything else on a known route is a
	// request-shape error.
	r.HandleMethodNotAllowed = true
	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponseDTO{Error: "Method not allowed"})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if database := db.Database(); database != nil {
			if err := database.RunCommand(context.Background(), bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/api/slack/command", handlers.SlackCommandHandler(svc))

	// v1 routes
	api := r.Group("/api/v1")
	{
		// the original scheduler hit enrich with GET, keep both
		api.GET("/enrich", handlers.EnrichHandler(svc))
		api.POST("/enrich", handlers.EnrichHandler(svc))
		api.GET("/references", handlers.ListReferencesHandler(svc))
	}

	return r
}
