package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/config"
	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"gorm.io/gorm"
)

// syncIntervalMs is the progress-push cadence the server expects from quiz
// clients. Served alongside course metadata so trackers pick it up instead
// of hardcoding their own.
func syncIntervalMs() int {
	if config.AppConfig != nil && config.AppConfig.SyncIntervalMs > 0 {
		return config.AppConfig.SyncIntervalMs
	}
	return 500
}

// GetCourse handles GET /courses/:id. The quiz UI needs totalQuestions to
// render progress and to know when the quiz can be completed.
func GetCourse(c *gin.Context) {
	var course models.Course
	if err := database.DB.First(&course, "id = ? OR slug = ?", c.Param("id"), c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"course":         course,
		"syncIntervalMs": syncIntervalMs(),
	})
}
