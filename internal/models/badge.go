package models

import "time"

type BadgeMetric string

const (
	MetricCoursesCompleted BadgeMetric = "COURSES_COMPLETED"
	MetricPostsCreated     BadgeMetric = "POSTS_CREATED"
	MetricLikesReceived    BadgeMetric = "LIKES_RECEIVED"
	MetricCourseCompleted  BadgeMetric = "COURSE_COMPLETED" // scoped to Badge.CourseID
)

type Badge struct {
	ID          string      `gorm:"primaryKey;type:text" json:"id"`
	Title       string      `gorm:"not null" json:"title"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"` // Name of the Lucide icon
	Metric      BadgeMetric `gorm:"type:text;not null" json:"metric"`
	CourseID    *string     `gorm:"index" json:"courseId,omitempty"` // nil = global scope
	Threshold   int         `gorm:"not null" json:"threshold"`
}

// BadgeAward is append-only. The composite primary key is the idempotency
// guarantee: a user can hold a given badge exactly once.
type BadgeAward struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	BadgeID   string    `gorm:"primaryKey;type:text" json:"badgeId"`
	AwardedAt time.Time `json:"awardedAt"`

	Badge Badge `gorm:"foreignKey:BadgeID" json:"badge"`
	User  User  `gorm:"foreignKey:UserID" json:"-"`
}

func (BadgeAward) TableName() string {
	return "badge_awards"
}
