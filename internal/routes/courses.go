package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/handlers"
)

func RegisterCourseRoutes(r *gin.RouterGroup) {
	courses := r.Group("/courses")
	{
		courses.GET("/:id", handlers.GetCourse)
	}
}
