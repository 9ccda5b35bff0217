package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"gorm.io/gorm"
)

type createFeedbackRequest struct {
	Type     models.FeedbackType `json:"type"`
	CourseID *string             `json:"courseId"`
	Rating   int                 `json:"rating" binding:"required"`
	Comment  string              `json:"comment"`
}

// CreateFeedback handles POST /feedback. Course-typed feedback requires an
// existing course and feeds its average rating on the next recompute.
func CreateFeedback(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating must be between 1 and 5"})
		return
	}

	if req.Type == "" {
		req.Type = models.FeedbackTypeCourse
	}

	if req.Type == models.FeedbackTypeCourse {
		if req.CourseID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required for course feedback"})
			return
		}
		var course models.Course
		if err := database.DB.Select("id").First(&course, "id = ?", *req.CourseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
				return
			}
			respondServiceError(c, err)
			return
		}
	}

	feedback := models.Feedback{
		UserID:   userID,
		Type:     req.Type,
		CourseID: req.CourseID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&feedback).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if feedback.CourseID != nil {
		refreshCourseStats(c.Request.Context(), *feedback.CourseID)
	}

	c.JSON(http.StatusCreated, gin.H{"feedback": feedback})
}

// DeleteFeedback handles DELETE /feedback/:id (soft delete, owner only)
func DeleteFeedback(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var feedback models.Feedback
	if err := database.DB.First(&feedback, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
			return
		}
		respondServiceError(c, err)
		return
	}

	if feedback.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your feedback"})
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Delete(&feedback).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if feedback.CourseID != nil {
		refreshCourseStats(c.Request.Context(), *feedback.CourseID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Feedback deleted"})
}
