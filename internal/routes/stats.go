package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/handlers"
)

func RegisterStatsRoutes(r *gin.RouterGroup) {
	stats := r.Group("/stats")
	{
		stats.GET("/course/:courseId", handlers.GetCourseStats)
		stats.GET("/user/:userId", handlers.GetUserStats)
	}
}
