package handlers

import (
	"net/http"
	"time"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReactionHandler struct{}

func NewReactionHandler() *ReactionHandler {
	return &ReactionHandler{}
}

// Toggle sets, switches or removes the user's reaction on a post: reacting
// with the same type removes it, a different type replaces it.
func (h *ReactionHandler) Toggle(c *gin.Context) {
	user, _ := CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))
	reactionType := c.PostForm("type")
	if reactionType == "" {
		reactionType = c.Query("type")
	}
	if !models.ValidReactionType(reactionType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown reaction type"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	var reacted bool
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Reaction
		err := tx.Where("user_id = ? AND post_id = ?", user.ID, postID).First(&existing).Error
		if err == nil {
			if existing.ReactionType == reactionType {
				return tx.Delete(&existing).Error
			}
			reacted = true
			return tx.Model(&existing).Updates(map[string]interface{}{
				"reaction_type": reactionType,
				"reacted_at":    time.Now().UnixMilli(),
			}).Error
		}
		reacted = true
		return tx.Create(&models.Reaction{
			UserID:       user.ID,
			PostID:       postID,
			ReactionType: reactionType,
			ReactedAt:    time.Now().UnixMilli(),
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reacted": reacted, "counts": reactionCounts(postID)})
}

// List returns a post's reaction counts per type.
func (h *ReactionHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"counts": reactionCounts(postID)})
}

func reactionCounts(postID uint) map[string]int64 {
	type row struct {
		ReactionType string
		Count        int64
	}
	var rows []row
	db.DB.Model(&models.Reaction{}).
		Select("reaction_type, COUNT(*) as count").
		Where("post_id = ?", postID).
		Group("reaction_type").
		Scan(&rows)

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ReactionType] = r.Count
	}
	return counts
}
