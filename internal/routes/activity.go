package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/handlers"
	"github.com/learnloop/learnloop-backend/internal/middleware"
)

func RegisterActivityRoutes(r *gin.RouterGroup) {
	activity := r.Group("/activity")
	activity.Use(middleware.AuthMiddleware())
	{
		activity.GET("", handlers.GetMyActivity)
		activity.POST("/enroll", handlers.Enroll)
		activity.PUT("/progress", middleware.ProgressRateLimit(), handlers.UpdateProgress)
		activity.POST("/complete", handlers.CompleteQuiz)
		activity.POST("/bookmark", handlers.ToggleBookmark)
	}
}
