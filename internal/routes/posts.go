package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/handlers"
	"github.com/learnloop/learnloop-backend/internal/middleware"
)

func RegisterPostRoutes(r *gin.RouterGroup) {
	posts := r.Group("/posts")
	posts.Use(middleware.AuthMiddleware())
	{
		posts.POST("", handlers.CreatePost)
		posts.DELETE("/:postId", handlers.DeletePost)
		posts.POST("/:postId/like", handlers.LikePost)
	}
}
