package models

import (
	"time"

	"github.com/learnloop/learnloop-backend/pkg/utils"
	"gorm.io/gorm"
)

type Post struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	AuthorID  string         `gorm:"index;not null" json:"authorId"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Title     string         `json:"title"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time      `json:"createdAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = utils.GenerateID()
	}
	return
}

// PostLike existence means "liked". Unlike deletes the row. The composite
// primary key keeps a double-submitting client from inserting twice.
type PostLike struct {
	UserID    string    `gorm:"primaryKey;type:text" json:"userId"`
	PostID    string    `gorm:"primaryKey;type:text" json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (PostLike) TableName() string {
	return "post_likes"
}
