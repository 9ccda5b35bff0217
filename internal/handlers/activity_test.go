package handlers

import (
	"net/http"
	"testing"

	"github.com/learnloop/learnloop-backend/internal/models"
	"github.com/learnloop/learnloop-backend/internal/seeds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnroll_CreatesRecordAndStats(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})
	mustCreate(t, db, &models.Course{ID: "course1", Title: "Go 101", Slug: "go-101", TotalQuestions: 10})

	c, w := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"registered":true`)

	// Enrollment triggers a course stats recompute
	var stats models.CourseStats
	require.NoError(t, db.First(&stats, "course_id = ?", "course1").Error)
	assert.Equal(t, int64(1), stats.TotalEnrollments)
}

func TestEnroll_SecondCallKeepsProgress(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})
	mustCreate(t, db, &models.Course{ID: "course1", Title: "Go 101", Slug: "go-101", TotalQuestions: 10})

	c, w := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, "PUT", "/api/activity/progress", "user1", map[string]interface{}{
		"courseId": "course1", "progressCount": 6, "mistakeCount": 2,
	})
	UpdateProgress(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quizProgressCount":6`)
}

func TestEnroll_UnknownCourse(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})

	c, w := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "missing"})
	Enroll(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEnroll_Unauthorized(t *testing.T) {
	setupTestDB(t)

	c, w := testContext(t, "POST", "/api/activity/enroll", "", map[string]string{"courseId": "course1"})
	Enroll(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateProgress_RegressionIsSilentNoOp(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})
	mustCreate(t, db, &models.Course{ID: "course1", Title: "Go 101", Slug: "go-101", TotalQuestions: 10})

	c, _ := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)

	c, w := testContext(t, "PUT", "/api/activity/progress", "user1", map[string]interface{}{
		"courseId": "course1", "progressCount": 4, "mistakeCount": 1,
	})
	UpdateProgress(c)
	require.Equal(t, http.StatusOK, w.Code)

	// The delayed duplicate comes back 200 with the stored record untouched
	c, w = testContext(t, "PUT", "/api/activity/progress", "user1", map[string]interface{}{
		"courseId": "course1", "progressCount": 2, "mistakeCount": 0,
	})
	UpdateProgress(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"quizProgressCount":4`)
	assert.Contains(t, w.Body.String(), `"quizMistakeCount":1`)
}

func TestCompleteQuiz_AwardsBadge(t *testing.T) {
	db := setupTestDB(t)
	seeds.SeedBadges()
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})
	mustCreate(t, db, &models.Course{ID: "course1", Title: "Go 101", Slug: "go-101", TotalQuestions: 3})

	c, _ := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)
	c, _ = testContext(t, "PUT", "/api/activity/progress", "user1", map[string]interface{}{
		"courseId": "course1", "progressCount": 3, "mistakeCount": 0,
	})
	UpdateProgress(c)

	c, w := testContext(t, "POST", "/api/activity/complete", "user1", map[string]string{"courseId": "course1"})
	CompleteQuiz(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":true`)

	// User stats were recomputed and the first-course badge awarded
	var stats models.UserStats
	require.NoError(t, db.First(&stats, "user_id = ?", "user1").Error)
	assert.Equal(t, int64(1), stats.TotalCoursesCompleted)

	var award models.BadgeAward
	require.NoError(t, db.First(&award, "user_id = ? AND badge_id = ?", "user1", "first-course").Error)
}

func TestCompleteQuiz_BeforeStartingIsConflict(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})
	mustCreate(t, db, &models.Course{ID: "course1", Title: "Go 101", Slug: "go-101", TotalQuestions: 3})

	c, _ := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)

	c, w := testContext(t, "POST", "/api/activity/complete", "user1", map[string]string{"courseId": "course1"})
	CompleteQuiz(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestToggleBookmarkHandler(t *testing.T) {
	db := setupTestDB(t)
	mustCreate(t, db, &models.User{ID: "user1", Username: "user1", Email: "user1@example.com"})
	mustCreate(t, db, &models.Course{ID: "course1", Title: "Go 101", Slug: "go-101", TotalQuestions: 3})

	c, _ := testContext(t, "POST", "/api/activity/enroll", "user1", map[string]string{"courseId": "course1"})
	Enroll(c)

	c, w := testContext(t, "POST", "/api/activity/bookmark", "user1", map[string]string{"courseId": "course1"})
	ToggleBookmark(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookmarked":true`)

	c, w = testContext(t, "POST", "/api/activity/bookmark", "user1", map[string]string{"courseId": "course1"})
	ToggleBookmark(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookmarked":false`)
}
