package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/learnloop/learnloop-backend/internal/models"
	apperrors "github.com/learnloop/learnloop-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrCreateActivity_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 10)

	first, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)
	assert.True(t, first.Registered)
	assert.Equal(t, models.QuizNotStarted, first.QuizStatus)
	assert.Equal(t, 0, first.QuizProgressCount)

	// Make some progress, then re-enroll: progress must survive
	_, err = ApplyQuizProgress(ctx, "user1", "course1", 3, 1)
	require.NoError(t, err)

	again, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)
	assert.Equal(t, 3, again.QuizProgressCount)
	assert.Equal(t, 1, again.QuizMistakeCount)
	assert.Equal(t, models.QuizInProgress, again.QuizStatus)

	var count int64
	db.Model(&models.ActivityRecord{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateActivity_UnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "user1")

	_, err := GetOrCreateActivity(context.Background(), "user1", "nope")
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestApplyQuizProgress_Monotonic(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 10)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)

	// A monotone source sequence delivered out of order with duplicates
	deliveries := []struct{ progress, mistakes int }{
		{2, 0},
		{5, 1},
		{3, 1}, // late duplicate of an earlier state
		{5, 1}, // exact duplicate
		{4, 0}, // regression on both axes
		{7, 2},
		{1, 0},
	}

	for _, d := range deliveries {
		_, err := ApplyQuizProgress(ctx, "user1", "course1", d.progress, d.mistakes)
		require.NoError(t, err)
	}

	var record models.ActivityRecord
	require.NoError(t, db.Where("user_id = ? AND course_id = ?", "user1", "course1").First(&record).Error)
	assert.Equal(t, 7, record.QuizProgressCount)
	assert.Equal(t, 2, record.QuizMistakeCount)
}

func TestApplyQuizProgress_StartsQuizOnce(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 10)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)

	first, err := ApplyQuizProgress(ctx, "user1", "course1", 1, 0)
	require.NoError(t, err)
	assert.Equal(t, models.QuizInProgress, first.QuizStatus)
	require.NotNil(t, first.QuizStartTime)
	startedAt := *first.QuizStartTime

	second, err := ApplyQuizProgress(ctx, "user1", "course1", 2, 0)
	require.NoError(t, err)
	require.NotNil(t, second.QuizStartTime)
	assert.Equal(t, startedAt.Unix(), second.QuizStartTime.Unix())
}

func TestApplyQuizProgress_CappedByQuestionCount(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 5)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)

	record, err := ApplyQuizProgress(ctx, "user1", "course1", 99, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, record.QuizProgressCount)
}

func TestApplyQuizProgress_RejectsNegative(t *testing.T) {
	db := setupTestDB(t)
	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 5)

	_, err := ApplyQuizProgress(context.Background(), "user1", "course1", -1, 0)
	require.Error(t, err)
}

func TestCompleteQuiz_InvalidTransitions(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 10)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)

	// Never started
	_, err = CompleteQuiz(ctx, "user1", "course1")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransition(err))

	// Started but not all questions answered
	_, err = ApplyQuizProgress(ctx, "user1", "course1", 6, 0)
	require.NoError(t, err)
	_, err = CompleteQuiz(ctx, "user1", "course1")
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidTransition(err))
}

func TestCompleteQuiz_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 10)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)
	_, err = ApplyQuizProgress(ctx, "user1", "course1", 10, 2)
	require.NoError(t, err)

	first, err := CompleteQuiz(ctx, "user1", "course1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizCompleted, first.QuizStatus)
	assert.True(t, first.Completed)
	require.NotNil(t, first.QuizStartTime)
	require.NotNil(t, first.QuizEndTime)
	require.NotNil(t, first.QuizTotalTime)
	assert.Equal(t, first.QuizEndTime.Sub(*first.QuizStartTime), *first.QuizTotalTime)
	assert.True(t, !first.QuizEndTime.Before(*first.QuizStartTime))

	// Second call succeeds and changes nothing
	second, err := CompleteQuiz(ctx, "user1", "course1")
	require.NoError(t, err)
	assert.Equal(t, models.QuizCompleted, second.QuizStatus)
	assert.Equal(t, first.QuizEndTime.Unix(), second.QuizEndTime.Unix())
	assert.Equal(t, *first.QuizTotalTime, *second.QuizTotalTime)
}

func TestCompleteQuiz_FreezesCounters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 3)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)
	_, err = ApplyQuizProgress(ctx, "user1", "course1", 3, 1)
	require.NoError(t, err)
	_, err = CompleteQuiz(ctx, "user1", "course1")
	require.NoError(t, err)

	// Late progress deliveries after completion are ignored
	record, err := ApplyQuizProgress(ctx, "user1", "course1", 3, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, record.QuizMistakeCount)
	assert.Equal(t, models.QuizCompleted, record.QuizStatus)
}

func TestCompleteQuiz_FullScenario(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "learner")
	createTestCourse(t, db, "go-101", 10)

	// Enroll
	record, err := GetOrCreateActivity(ctx, "learner", "go-101")
	require.NoError(t, err)
	assert.True(t, record.Registered)
	assert.Equal(t, models.QuizNotStarted, record.QuizStatus)

	// First progress update starts the quiz
	record, err = ApplyQuizProgress(ctx, "learner", "go-101", 4, 1)
	require.NoError(t, err)
	assert.Equal(t, models.QuizInProgress, record.QuizStatus)
	assert.NotNil(t, record.QuizStartTime)

	// Delayed duplicate arrives afterwards and is rejected as a regression
	record, err = ApplyQuizProgress(ctx, "learner", "go-101", 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, record.QuizProgressCount)
	assert.Equal(t, 1, record.QuizMistakeCount)

	// Finish all questions and complete
	_, err = ApplyQuizProgress(ctx, "learner", "go-101", 10, 1)
	require.NoError(t, err)
	record, err = CompleteQuiz(ctx, "learner", "go-101")
	require.NoError(t, err)
	assert.Equal(t, models.QuizCompleted, record.QuizStatus)
	assert.True(t, record.Completed)
	require.NotNil(t, record.QuizTotalTime)

	// Course stats reflect the completion on the next recompute
	stats, err := RecomputeCourseStats(ctx, "go-101")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.TotalEnrollments)
	assert.Equal(t, 100.0, stats.CompletionRate)
}

func TestToggleBookmark(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "course1", 10)
	_, err := GetOrCreateActivity(ctx, "user1", "course1")
	require.NoError(t, err)

	on, err := ToggleBookmark(ctx, "user1", "course1")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := ToggleBookmark(ctx, "user1", "course1")
	require.NoError(t, err)
	assert.False(t, off)
}

func TestListUserActivity(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	createTestUser(t, db, "user1")
	createTestCourse(t, db, "c1", 10)
	createTestCourse(t, db, "c2", 10)
	_, err := GetOrCreateActivity(ctx, "user1", "c1")
	require.NoError(t, err)
	_, err = GetOrCreateActivity(ctx, "user1", "c2")
	require.NoError(t, err)

	records, err := ListUserActivity(ctx, "user1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
