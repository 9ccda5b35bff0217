package models

import "time"

// QuizStatus is the quiz axis of an activity record. Transitions only move
// forward: NOT_STARTED -> IN_PROGRESS -> COMPLETED.
type QuizStatus string

const (
	QuizNotStarted QuizStatus = "NOT_STARTED"
	QuizInProgress QuizStatus = "IN_PROGRESS"
	QuizCompleted  QuizStatus = "COMPLETED"
)

// ActivityRecord tracks one user's progress through one course: enrollment,
// quiz state with monotonic counters, and the terminal completed flag.
type ActivityRecord struct {
	UserID   string `gorm:"primaryKey;type:text" json:"userId"`
	CourseID string `gorm:"primaryKey;type:text" json:"courseId"`

	Registered bool `gorm:"default:false" json:"registered"`
	Completed  bool `gorm:"default:false" json:"completed"`

	QuizStatus        QuizStatus     `gorm:"type:text;default:'NOT_STARTED'" json:"quizStatus"`
	QuizStartTime     *time.Time     `json:"quizStartTime,omitempty"`
	QuizEndTime       *time.Time     `json:"quizEndTime,omitempty"`
	QuizTotalTime     *time.Duration `json:"quizTotalTime,omitempty"` // nanoseconds, set once on completion
	QuizMistakeCount  int            `gorm:"default:0" json:"quizMistakeCount"`
	QuizProgressCount int            `gorm:"default:0" json:"quizProgressCount"`

	Bookmarked bool `gorm:"default:false" json:"bookmarked"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User   User   `gorm:"foreignKey:UserID" json:"-"`
	Course Course `gorm:"foreignKey:CourseID" json:"-"`
}

func (ActivityRecord) TableName() string {
	return "activity_records"
}
