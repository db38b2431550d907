package handlers

import (
	"net/http"
	"strings"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentRequest struct {
	Text     string `json:"text" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// Create adds a comment (or reply) to a post.
func (h *CommentHandler) Create(c *gin.Context) {
	user, _ := CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment text is required"})
		return
	}

	var post models.Post
	if err := db.DB.First(&post, postID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	if req.ParentID != nil {
		var parent models.Comment
		if err := db.DB.First(&parent, *req.ParentID).Error; err != nil || parent.PostID != postID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "parent comment not found on this post"})
			return
		}
	}

	comment := models.Comment{
		PostID:   postID,
		UserID:   user.ID,
		ParentID: req.ParentID,
		Text:     strings.TrimSpace(req.Text),
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	// Notify the post author, unless they commented themselves
	if post.AuthorID != user.ID {
		actorID := user.ID
		notification := models.Notification{
			UserID:  post.AuthorID,
			ActorID: &actorID,
			PostID:  &postID,
			Type:    models.NotificationTypeCommentPost,
			Message: user.DisplayName + " commented on your post",
		}
		db.DB.Create(&notification)
	}

	comment.User = *user
	comment.HTML = utils.RenderMarkdown(comment.Text)
	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// List returns a post's comments oldest first, bodies rendered to sanitized
// HTML.
func (h *CommentHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	limit := atoiDefault(c.Query("limit"), 100)

	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at").
		Limit(limit).
		Find(&comments)

	for i := range comments {
		comments[i].HTML = utils.RenderMarkdown(comments[i].Text)
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Delete removes the user's own comment.
func (h *CommentHandler) Delete(c *gin.Context) {
	user, _ := CurrentUser(c)
	commentID := utils.StringToUint(c.Param("cid"))

	var comment models.Comment
	if err := db.DB.First(&comment, commentID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}
	if comment.UserID != user.ID && user.Role != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your comment"})
		return
	}
	db.DB.Delete(&comment)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
