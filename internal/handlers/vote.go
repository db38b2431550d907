package handlers

import (
	"net/http"

	"bluffpot/internal/services"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteRequest struct {
	Guess string `json:"guess" binding:"required"`
	Wager int    `json:"wager" binding:"required"`
}

// Place records a wagered truth/bluff guess on a post.
func (h *VoteHandler) Place(c *gin.Context) {
	user, _ := CurrentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guess and wager are required"})
		return
	}

	vote, err := services.PlaceVote(user.ID, postID, req.Guess, req.Wager)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"vote": vote})
}

// Mine returns the current user's vote on a post, nil if none.
func (h *VoteHandler) Mine(c *gin.Context) {
	user, _ := CurrentUser(c)
	vote, err := services.GetMyVote(user.ID, utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote": vote})
}

// Count returns a post's vote count (safe before reveal).
func (h *VoteHandler) Count(c *gin.Context) {
	count, err := services.CountVotes(utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// List returns every vote on a revealed post.
func (h *VoteHandler) List(c *gin.Context) {
	votes, err := services.ListVotesForPost(utils.StringToUint(c.Param("id")))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"votes": votes})
}
