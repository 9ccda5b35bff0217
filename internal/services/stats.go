package services

import (
	"context"
	"fmt"
	"time"

	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"gorm.io/gorm/clause"
)

// Aggregate stats are a cache, never a source of truth. Both recompute
// functions read every relevant source row and overwrite the cached row
// wholesale; there is deliberately no incremental update path anywhere,
// so a recompute after any write always converges to the correct values.

// RecomputeCourseStats rebuilds the cached stats row for one course.
func RecomputeCourseStats(ctx context.Context, courseID string) (*models.CourseStats, error) {
	db := database.DB.WithContext(ctx)

	var totalEnrollments int64
	if err := db.Model(&models.ActivityRecord{}).
		Where("course_id = ? AND registered = ?", courseID, true).
		Count(&totalEnrollments).Error; err != nil {
		return nil, err
	}

	var completedCount int64
	if err := db.Model(&models.ActivityRecord{}).
		Where("course_id = ? AND completed = ?", courseID, true).
		Count(&completedCount).Error; err != nil {
		return nil, err
	}

	// Defined as 0 when nobody is enrolled
	completionRate := 0.0
	if totalEnrollments > 0 {
		completionRate = 100 * float64(completedCount) / float64(totalEnrollments)
	}

	type ratingAgg struct {
		Average float64
		Total   int64
	}
	var agg ratingAgg
	if err := db.Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("course_id = ? AND type = ?", courseID, models.FeedbackTypeCourse).
		Scan(&agg).Error; err != nil {
		return nil, err
	}

	stats := models.CourseStats{
		CourseID:         courseID,
		TotalEnrollments: totalEnrollments,
		CompletionRate:   completionRate,
		AverageRating:    agg.Average,
		TotalReviews:     agg.Total,
		UpdatedAt:        time.Now(),
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		UpdateAll: true,
	}).Create(&stats).Error; err != nil {
		return nil, err
	}

	database.CacheInvalidate(fmt.Sprintf("stats:course:%s", courseID))
	return &stats, nil
}

// RecomputeUserStats rebuilds the cached stats row for one user.
func RecomputeUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	db := database.DB.WithContext(ctx)

	var completedCourses int64
	if err := db.Model(&models.ActivityRecord{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&completedCourses).Error; err != nil {
		return nil, err
	}

	var totalPosts int64
	if err := db.Model(&models.Post{}).
		Where("author_id = ?", userID).
		Count(&totalPosts).Error; err != nil {
		return nil, err
	}

	var likesReceived int64
	if err := db.Model(&models.PostLike{}).
		Joins("JOIN posts ON posts.id = post_likes.post_id").
		Where("posts.author_id = ? AND posts.deleted_at IS NULL", userID).
		Count(&likesReceived).Error; err != nil {
		return nil, err
	}

	stats := models.UserStats{
		UserID:                userID,
		TotalCoursesCompleted: completedCourses,
		TotalPosts:            totalPosts,
		TotalLikesReceived:    likesReceived,
		UpdatedAt:             time.Now(),
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		UpdateAll: true,
	}).Create(&stats).Error; err != nil {
		return nil, err
	}

	database.CacheInvalidate(fmt.Sprintf("stats:user:%s", userID))
	return &stats, nil
}
