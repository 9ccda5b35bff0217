package models

import (
	"time"

	"github.com/learnloop/learnloop-backend/pkg/utils"
	"gorm.io/gorm"
)

type FeedbackType string

const (
	FeedbackTypeCourse   FeedbackType = "COURSE"
	FeedbackTypePlatform FeedbackType = "PLATFORM"
)

// Feedback carries a 1-5 rating. Course-typed rows feed
// CourseStats.AverageRating; soft-deleted rows are excluded.
type Feedback struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	UserID    string         `gorm:"index;not null" json:"userId"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	Type      FeedbackType   `gorm:"type:text;default:'COURSE'" json:"type"`
	CourseID  *string        `gorm:"index" json:"courseId,omitempty"`
	Rating    int            `gorm:"not null" json:"rating"`
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = utils.GenerateID()
	}
	return
}

func (Feedback) TableName() string {
	return "feedback_messages"
}
