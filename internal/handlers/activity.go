package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/services"
	apperrors "github.com/learnloop/learnloop-backend/pkg/errors"
)

type enrollRequest struct {
	CourseID string `json:"courseId" binding:"required"`
}

type progressRequest struct {
	CourseID      string `json:"courseId" binding:"required"`
	ProgressCount int    `json:"progressCount"`
	MistakeCount  int    `json:"mistakeCount"`
}

// Enroll handles POST /activity/enroll. Re-enrolling an already-registered
// pair returns the existing record unchanged.
func Enroll(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}

	record, err := services.GetOrCreateActivity(c.Request.Context(), userID, req.CourseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	refreshCourseStats(c.Request.Context(), req.CourseID)

	c.JSON(http.StatusOK, gin.H{"activity": record})
}

// UpdateProgress handles PUT /activity/progress. Regressions are silently
// ignored and the current record is returned, so clients can retry freely.
func UpdateProgress(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req progressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}

	record, err := services.ApplyQuizProgress(c.Request.Context(), userID, req.CourseID, req.ProgressCount, req.MistakeCount)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activity": record})
}

// CompleteQuiz handles POST /activity/complete. A repeat call on an
// already-completed quiz returns the completed record with 200.
func CompleteQuiz(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}

	record, err := services.CompleteQuiz(c.Request.Context(), userID, req.CourseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	refreshCourseStats(c.Request.Context(), req.CourseID)
	refreshUserStats(c.Request.Context(), userID)
	evaluateBadges(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"activity": record})
}

// ToggleBookmark handles POST /activity/bookmark
func ToggleBookmark(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req enrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "courseId is required"})
		return
	}

	bookmarked, err := services.ToggleBookmark(c.Request.Context(), userID, req.CourseID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookmarked": bookmarked})
}

// GetMyActivity handles GET /activity
func GetMyActivity(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	records, err := services.ListUserActivity(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"activities": records})
}

// respondServiceError maps service errors onto HTTP responses. Domain
// errors carry their own status; anything else is a persistence failure
// reported as 503 so callers know a retry is safe.
func respondServiceError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		c.JSON(appErr.Code, gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
}
