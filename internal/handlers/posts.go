package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/learnloop/learnloop-backend/internal/database"
	"github.com/learnloop/learnloop-backend/internal/models"
	"github.com/learnloop/learnloop-backend/internal/services"
	"gorm.io/gorm"
)

type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" binding:"required"`
}

// CreatePost handles POST /posts
func CreatePost(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	post := models.Post{
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	refreshUserStats(c.Request.Context(), userID)
	evaluateBadges(c.Request.Context(), userID)

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// DeletePost handles DELETE /posts/:postId (soft delete, author only)
func DeletePost(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	postID := c.Param("postId")

	var post models.Post
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		respondServiceError(c, err)
		return
	}

	if post.AuthorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your post"})
		return
	}

	if err := database.DB.WithContext(c.Request.Context()).Delete(&post).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	refreshUserStats(c.Request.Context(), userID)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// LikePost handles POST /posts/:postId/like. Toggles the like and returns
// the new state with a count taken in the same transaction.
func LikePost(c *gin.Context) {
	userID := c.GetString("userId")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	postID := c.Param("postId")

	liked, likeCount, authorID, err := services.ToggleLike(c.Request.Context(), userID, postID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	// Likes feed the author's aggregate stats, not the liker's
	refreshUserStats(c.Request.Context(), authorID)
	evaluateBadges(c.Request.Context(), authorID)

	c.JSON(http.StatusOK, gin.H{"liked": liked, "likeCount": likeCount})
}
