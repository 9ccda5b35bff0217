package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/handlers"
	"github.com/learnloop/learnloop-backend/internal/middleware"
)

func RegisterFeedbackRoutes(r *gin.RouterGroup) {
	feedback := r.Group("/feedback")
	feedback.Use(middleware.AuthMiddleware())
	{
		feedback.POST("", handlers.CreateFeedback)
		feedback.DELETE("/:id", handlers.DeleteFeedback)
	}
}
