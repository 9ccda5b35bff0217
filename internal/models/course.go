package models

import (
	"time"

	"github.com/learnloop/learnloop-backend/pkg/utils"
	"gorm.io/gorm"
)

// CompletionPolicy decides what, beyond the quiz, a course requires before
// an enrollment counts as completed. Only QUIZ_ONLY exists today; a course
// carrying any other policy keeps completed=false until a dedicated
// evaluation marks it.
type CompletionPolicy string

const (
	CompletionPolicyQuizOnly CompletionPolicy = "QUIZ_ONLY"
)

type Course struct {
	ID               string           `gorm:"primaryKey;type:text" json:"id"`
	Title            string           `gorm:"not null" json:"title"`
	Slug             string           `gorm:"uniqueIndex" json:"slug"`
	TotalQuestions   int              `gorm:"default:0" json:"totalQuestions"`
	CompletionPolicy CompletionPolicy `gorm:"type:text;default:'QUIZ_ONLY'" json:"completionPolicy"`
	CreatedAt        time.Time        `json:"createdAt"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = utils.GenerateID()
	}
	return
}
