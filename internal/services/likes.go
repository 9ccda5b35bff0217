package services

import (
	"context"
	"errors"
	"time"

	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	apperrors "github.com/learnloop/learnloop-backend/pkg/errors"
	"gorm.io/gorm"
)

// ToggleLike flips the like state for (userID, postID) and returns the new
// state together with a fresh like count taken inside the same transaction,
// so the caller never sees a stale count. The post's author is returned as
// well since likes feed the author's aggregates, not the liker's. The row
// lock serializes rapid double-clicks from the same user; the composite
// primary key on post_likes backs that up at the storage layer.
func ToggleLike(ctx context.Context, userID, postID string) (liked bool, likeCount int64, authorID string, err error) {
	defer lockRow(userID, postID).Unlock()

	err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id", "author_id").First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("Post not found")
			}
			return err
		}
		authorID = post.AuthorID

		var existing models.PostLike
		findErr := tx.Where("user_id = ? AND post_id = ?", userID, postID).First(&existing).Error

		switch {
		case findErr == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			like := models.PostLike{UserID: userID, PostID: postID, CreatedAt: time.Now()}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
		default:
			return findErr
		}

		return tx.Model(&models.PostLike{}).
			Where("post_id = ?", postID).
			Count(&likeCount).Error
	})
	if err != nil {
		return false, 0, "", err
	}
	return liked, likeCount, authorID, nil
}
