package handlers

import (
	"context"
	"time"

	"github.com/learnloop/learnloop-backend/internal/services"
	"github.com/learnloop/learnloop-backend/pkg/logger"
)

// Stats recomputation runs after the durable write has committed. A failure
// here must never fail the request (the activity/like row is the source of
// truth, stats are a cache), but it is retried once in the background so
// the cache cannot drift permanently on a transient error.

func refreshCourseStats(ctx context.Context, courseID string) {
	if _, err := services.RecomputeCourseStats(ctx, courseID); err != nil {
		logger.Warn().Err(err).Str("course_id", courseID).Msg("Course stats recompute failed, retrying in background")
		go retryCourseStats(courseID)
	}
}

func refreshUserStats(ctx context.Context, userID string) {
	if _, err := services.RecomputeUserStats(ctx, userID); err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("User stats recompute failed, retrying in background")
		go retryUserStats(userID)
	}
}

func retryCourseStats(courseID string) {
	time.Sleep(2 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := services.RecomputeCourseStats(ctx, courseID); err != nil {
		logger.Error().Err(err).Str("course_id", courseID).Msg("Course stats recompute retry failed")
	}
}

func retryUserStats(userID string) {
	time.Sleep(2 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := services.RecomputeUserStats(ctx, userID); err != nil {
		logger.Error().Err(err).Str("user_id", userID).Msg("User stats recompute retry failed")
	}
}

func evaluateBadges(ctx context.Context, userID string) {
	newBadges, err := services.EvaluateAndAward(ctx, userID)
	if err != nil {
		logger.Warn().Err(err).Str("user_id", userID).Msg("Badge evaluation failed")
		return
	}
	for _, badge := range newBadges {
		logger.Info().Str("user_id", userID).Str("badge", badge.Title).Msg("Badge awarded")
	}
}
