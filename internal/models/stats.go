package models

import "time"

// CourseStats is a derived cache over activity and feedback rows. It is
// recomputed wholesale by the stats service, never patched incrementally.
type CourseStats struct {
	CourseID         string    `gorm:"primaryKey;type:text" json:"courseId"`
	TotalEnrollments int64     `gorm:"default:0" json:"totalEnrollments"`
	CompletionRate   float64   `gorm:"default:0" json:"completionRate"` // 0-100
	AverageRating    float64   `gorm:"default:0" json:"averageRating"`
	TotalReviews     int64     `gorm:"default:0" json:"totalReviews"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (CourseStats) TableName() string {
	return "course_stats"
}

// UserStats is the per-user derived cache feeding badge evaluation.
type UserStats struct {
	UserID                string    `gorm:"primaryKey;type:text" json:"userId"`
	TotalCoursesCompleted int64     `gorm:"default:0" json:"totalCoursesCompleted"`
	TotalPosts            int64     `gorm:"default:0" json:"totalPosts"`
	TotalLikesReceived    int64     `gorm:"default:0" json:"totalLikesReceived"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

func (UserStats) TableName() string {
	return "user_stats"
}
