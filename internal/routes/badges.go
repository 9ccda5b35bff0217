package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/handlers"
)

func RegisterBadgeRoutes(r *gin.RouterGroup) {
	badges := r.Group("/badges")
	{
		badges.GET("/stats", handlers.GetBadgeStats)
	}
}
