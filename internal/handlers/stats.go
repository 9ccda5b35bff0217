package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"github.com/learnloop/learnloop-backend/internal/services"
	"gorm.io/gorm"
)

const statsCacheTTL = 5 * time.Minute

// GetCourseStats handles GET /stats/course/:courseId. Reads go through the
// redis cache; a missing stats row is computed on demand so a course that
// was never written to still reports zeroes.
func GetCourseStats(c *gin.Context) {
	courseID := c.Param("courseId")

	cacheKey := fmt.Sprintf("stats:course:%s", courseID)
	var cached models.CourseStats
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"stats": cached})
		return
	}

	var course models.Course
	if err := database.DB.Select("id").First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Course not found"})
			return
		}
		respondServiceError(c, err)
		return
	}

	var stats models.CourseStats
	err := database.DB.Where("course_id = ?", courseID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh, recErr := services.RecomputeCourseStats(c.Request.Context(), courseID)
		if recErr != nil {
			respondServiceError(c, recErr)
			return
		}
		stats = *fresh
	} else if err != nil {
		respondServiceError(c, err)
		return
	}

	database.CacheSet(cacheKey, stats, statsCacheTTL)
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// GetUserStats handles GET /stats/user/:userId
func GetUserStats(c *gin.Context) {
	userID := c.Param("userId")

	cacheKey := fmt.Sprintf("stats:user:%s", userID)
	var cached models.UserStats
	if err := database.CacheGet(cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"stats": cached})
		return
	}

	var user models.User
	if err := database.DB.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		respondServiceError(c, err)
		return
	}

	var stats models.UserStats
	err := database.DB.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		fresh, recErr := services.RecomputeUserStats(c.Request.Context(), userID)
		if recErr != nil {
			respondServiceError(c, recErr)
			return
		}
		stats = *fresh
	} else if err != nil {
		respondServiceError(c, err)
		return
	}

	database.CacheSet(cacheKey, stats, statsCacheTTL)
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
