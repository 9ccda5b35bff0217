package services

import (
	"context"
	"time"

	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"gorm.io/gorm/clause"
)

// EvaluateAndAward checks every badge definition against the user's current
// aggregate stats and inserts an award row for each newly met threshold.
// The insert uses ON CONFLICT DO NOTHING against the (user_id, badge_id)
// primary key, so redundant evaluation never double-awards.
func EvaluateAndAward(ctx context.Context, userID string) ([]models.Badge, error) {
	db := database.DB.WithContext(ctx)

	var stats models.UserStats
	if err := db.Where("user_id = ?", userID).Limit(1).Find(&stats).Error; err != nil {
		return nil, err
	}

	var badges []models.Badge
	if err := db.Find(&badges).Error; err != nil {
		return nil, err
	}

	var newBadges []models.Badge
	for _, badge := range badges {
		progress, err := badgeProgress(ctx, badge, userID, &stats)
		if err != nil {
			return newBadges, err
		}
		if progress < int64(badge.Threshold) {
			continue
		}

		award := models.BadgeAward{
			UserID:    userID,
			BadgeID:   badge.ID,
			AwardedAt: time.Now(),
		}
		res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&award)
		if res.Error != nil {
			return newBadges, res.Error
		}
		if res.RowsAffected > 0 {
			newBadges = append(newBadges, badge)
		}
	}

	return newBadges, nil
}

func badgeProgress(ctx context.Context, badge models.Badge, userID string, stats *models.UserStats) (int64, error) {
	switch badge.Metric {
	case models.MetricCoursesCompleted:
		return stats.TotalCoursesCompleted, nil
	case models.MetricPostsCreated:
		return stats.TotalPosts, nil
	case models.MetricLikesReceived:
		return stats.TotalLikesReceived, nil
	case models.MetricCourseCompleted:
		if badge.CourseID == nil {
			return 0, nil
		}
		var count int64
		err := database.DB.WithContext(ctx).Model(&models.ActivityRecord{}).
			Where("user_id = ? AND course_id = ? AND completed = ?", userID, *badge.CourseID, true).
			Count(&count).Error
		return count, err
	default:
		return 0, nil
	}
}

// BadgeStat is one row of the admin badge report.
type BadgeStat struct {
	Title string `json:"title"`
	Count int64  `json:"count"`
}

// GetBadgeAwardStats returns the number of awards per badge, including
// badges nobody has earned yet.
func GetBadgeAwardStats(ctx context.Context) ([]BadgeStat, error) {
	var stats []BadgeStat
	err := database.DB.WithContext(ctx).
		Table("badges").
		Select("badges.title AS title, COUNT(badge_awards.user_id) AS count").
		Joins("LEFT JOIN badge_awards ON badge_awards.badge_id = badges.id").
		Group("badges.id, badges.title").
		Order("count DESC, badges.title ASC").
		Scan(&stats).Error
	return stats, err
}
