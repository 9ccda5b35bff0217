package services

import (
	"context"
	"errors"
	"time"

	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	apperrors "github.com/learnloop/learnloop-backend/pkg/errors"
	"gorm.io/gorm"
)

// GetOrCreateActivity registers a user on a course. Calling it for an
// already-registered pair returns the existing record untouched, so a
// duplicate enroll can never reset progress.
func GetOrCreateActivity(ctx context.Context, userID, courseID string) (*models.ActivityRecord, error) {
	defer lockRow(userID, courseID).Unlock()

	var record models.ActivityRecord
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUserAndCourse(tx, userID, courseID); err != nil {
			return err
		}

		err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&record).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		record = models.ActivityRecord{
			UserID:     userID,
			CourseID:   courseID,
			Registered: true,
			QuizStatus: models.QuizNotStarted,
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ApplyQuizProgress moves the monotonic quiz counters forward. Updates that
// would lower either counter are dropped silently and the current record is
// returned, which makes duplicate or reordered network deliveries safe to
// replay. The first accepted update flips the quiz to IN_PROGRESS and
// stamps the start time.
func ApplyQuizProgress(ctx context.Context, userID, courseID string, progressCount, mistakeCount int) (*models.ActivityRecord, error) {
	if progressCount < 0 || mistakeCount < 0 {
		return nil, apperrors.BadRequest("progress and mistake counts must be non-negative")
	}

	defer lockRow(userID, courseID).Unlock()

	var record models.ActivityRecord
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Course not found")
			}
			return err
		}

		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Activity record not found, enroll first")
			}
			return err
		}

		// Completed quizzes are frozen
		if record.QuizStatus == models.QuizCompleted {
			return nil
		}

		// Progress is capped by the course question count
		if progressCount > course.TotalQuestions {
			progressCount = course.TotalQuestions
		}

		// Regression or duplicate: keep the acknowledged values
		if progressCount < record.QuizProgressCount || mistakeCount < record.QuizMistakeCount {
			return nil
		}
		if progressCount == record.QuizProgressCount && mistakeCount == record.QuizMistakeCount {
			return nil
		}

		if record.QuizStatus == models.QuizNotStarted {
			now := time.Now()
			record.QuizStatus = models.QuizInProgress
			record.QuizStartTime = &now
		}

		record.QuizProgressCount = progressCount
		record.QuizMistakeCount = mistakeCount
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CompleteQuiz finalizes the quiz axis. It requires an in-progress quiz
// with all questions answered; a repeat call on an already-completed quiz
// is treated as success and returns the existing record.
func CompleteQuiz(ctx context.Context, userID, courseID string) (*models.ActivityRecord, error) {
	defer lockRow(userID, courseID).Unlock()

	var record models.ActivityRecord
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var course models.Course
		if err := tx.First(&course, "id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Course not found")
			}
			return err
		}

		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Activity record not found, enroll first")
			}
			return err
		}

		// Idempotent retry: already completed is not an error
		if record.QuizStatus == models.QuizCompleted {
			return nil
		}

		if record.QuizStatus != models.QuizInProgress {
			return apperrors.InvalidTransition("Quiz has not been started")
		}
		if record.QuizProgressCount < course.TotalQuestions {
			return apperrors.InvalidTransition("Quiz is not fully answered")
		}

		now := time.Now()
		record.QuizStatus = models.QuizCompleted
		record.QuizEndTime = &now
		if record.QuizStartTime != nil {
			total := now.Sub(*record.QuizStartTime)
			record.QuizTotalTime = &total
		}
		if course.CompletionPolicy == models.CompletionPolicyQuizOnly {
			record.Completed = true
		}
		return tx.Save(&record).Error
	})
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ToggleBookmark flips the bookmark flag and returns the new state.
// Bookmarks have no monotonicity constraint.
func ToggleBookmark(ctx context.Context, userID, courseID string) (bool, error) {
	defer lockRow(userID, courseID).Unlock()

	var bookmarked bool
	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var record models.ActivityRecord
		if err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).First(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Activity record not found, enroll first")
			}
			return err
		}

		bookmarked = !record.Bookmarked
		return tx.Model(&record).Update("bookmarked", bookmarked).Error
	})
	if err != nil {
		return false, err
	}
	return bookmarked, nil
}

// ListUserActivity returns all of a user's activity records, newest first.
func ListUserActivity(ctx context.Context, userID string) ([]models.ActivityRecord, error) {
	var records []models.ActivityRecord
	err := database.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at desc").
		Find(&records).Error
	return records, err
}

func ensureUserAndCourse(tx *gorm.DB, userID, courseID string) error {
	var user models.User
	if err := tx.Select("id").First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("User not found")
		}
		return err
	}
	var course models.Course
	if err := tx.Select("id").First(&course, "id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Course not found")
		}
		return err
	}
	return nil
}
