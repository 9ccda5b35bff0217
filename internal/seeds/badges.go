package seeds

import (
	"log"

	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"gorm.io/gorm/clause"
)

// SeedBadges installs the static badge catalog. IDs are stable so reseeding
// is idempotent and existing awards keep pointing at the right badge.
func SeedBadges() {
	log.Println("🎖️ Seeding Badge Catalog...")

	badges := []models.Badge{
		{
			ID:          "first-course",
			Title:       "First Steps",
			Description: "Completed your first course.",
			Icon:        "graduation-cap",
			Metric:      models.MetricCoursesCompleted,
			Threshold:   1,
		},
		{
			ID:          "5-courses",
			Title:       "Dedicated Learner",
			Description: "Completed 5 courses.",
			Icon:        "book-open",
			Metric:      models.MetricCoursesCompleted,
			Threshold:   5,
		},
		{
			ID:          "25-courses",
			Title:       "Scholar",
			Description: "Completed 25 courses. A true lifelong learner.",
			Icon:        "crown",
			Metric:      models.MetricCoursesCompleted,
			Threshold:   25,
		},
		{
			ID:          "first-post",
			Title:       "Conversation Starter",
			Description: "Published your first post.",
			Icon:        "message-circle",
			Metric:      models.MetricPostsCreated,
			Threshold:   1,
		},
		{
			ID:          "10-posts",
			Title:       "Community Voice",
			Description: "Published 10 posts to the community.",
			Icon:        "megaphone",
			Metric:      models.MetricPostsCreated,
			Threshold:   10,
		},
		{
			ID:          "10-likes",
			Title:       "Crowd Pleaser",
			Description: "Received 10 likes on your posts.",
			Icon:        "heart",
			Metric:      models.MetricLikesReceived,
			Threshold:   10,
		},
		{
			ID:          "100-likes",
			Title:       "Community Favorite",
			Description: "Received 100 likes on your posts.",
			Icon:        "star",
			Metric:      models.MetricLikesReceived,
			Threshold:   100,
		},
	}

	for _, badge := range badges {
		if err := database.DB.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&badge).Error; err != nil {
			log.Printf("Failed to seed badge %s: %v", badge.ID, err)
		}
	}

	log.Printf("✅ Seeded %d badges", len(badges))
}
