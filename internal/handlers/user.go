package handlers

import (
	"fmt"
	"net/http"

	"bluffpot/internal/db"
	"bluffpot/internal/models"
	"bluffpot/internal/services"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Me returns the logged-in user with a fresh balance.
func (h *UserHandler) Me(c *gin.Context) {
	user, _ := CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Profile is a user's public page: identity plus their recent posts.
func (h *UserHandler) Profile(c *gin.Context) {
	var user models.User
	if err := db.DB.Where("username = ?", c.Param("username")).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	posts, err := services.ListPostsByAuthor(user.ID, 30)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user, "posts": posts})
}

// enrichedTransaction adds post/vote context to a ledger entry for display.
type enrichedTransaction struct {
	models.ChipTransaction
	PostCaption string `json:"post_caption,omitempty"`
	PostDate    string `json:"post_date,omitempty"`
	PromptText  string `json:"prompt_text,omitempty"`
	IsRevealed  *bool  `json:"is_revealed,omitempty"`
	Actual      string `json:"actual,omitempty"`
	MyGuess     string `json:"my_guess,omitempty"`
	Wager       int    `json:"wager,omitempty"`
}

// Transactions lists the user's chip ledger, newest first, with post and vote
// context.
func (h *UserHandler) Transactions(c *gin.Context) {
	user, _ := CurrentUser(c)
	limit := atoiDefault(c.Query("limit"), 100)
	if limit > 200 {
		limit = 200
	}

	var txs []models.ChipTransaction
	db.DB.Where("user_id = ?", user.ID).
		Order("transaction_date DESC").
		Limit(limit).
		Find(&txs)

	enriched := make([]enrichedTransaction, 0, len(txs))
	for _, tx := range txs {
		e := enrichedTransaction{ChipTransaction: tx}
		if tx.PostID != nil {
			var post models.Post
			if err := db.DB.First(&post, *tx.PostID).Error; err == nil {
				e.PostCaption = post.Caption
				e.PostDate = post.PostDate
				e.IsRevealed = &post.IsRevealed
				if post.IsRevealed {
					e.Actual = post.Actual
				}
				var round models.Round
				if err := db.DB.First(&round, post.RoundID).Error; err == nil {
					e.PromptText = round.PromptText
				}
			}
		}
		if tx.VoteID != nil {
			var vote models.Vote
			if err := db.DB.First(&vote, *tx.VoteID).Error; err == nil {
				e.MyGuess = vote.Guess
				e.Wager = vote.Wager
			}
		}
		enriched = append(enriched, e)
	}

	c.JSON(http.StatusOK, gin.H{"transactions": enriched})
}

// Leaderboard ranks users by chip balance.
func (h *UserHandler) Leaderboard(c *gin.Context) {
	limit := atoiDefault(c.Query("limit"), 50)
	if limit > 100 {
		limit = 100
	}

	var users []models.User
	db.DB.Order("chip_balance DESC, id").Limit(limit).Find(&users)
	for i := range users {
		users[i].Rank = i + 1
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// MyRank returns the logged-in user's 1-based global rank by chips.
func (h *UserHandler) MyRank(c *gin.Context) {
	user, _ := CurrentUser(c)

	var ahead int64
	db.DB.Model(&models.User{}).
		Where("chip_balance > ? OR (chip_balance = ? AND id < ?)", user.ChipBalance, user.ChipBalance, user.ID).
		Count(&ahead)

	c.JSON(http.StatusOK, gin.H{"rank": ahead + 1})
}

// DailyBonus grants the once-a-day chip claim.
func (h *UserHandler) DailyBonus(c *gin.Context) {
	user, _ := CurrentUser(c)

	chips, bonus, alreadyClaimed, err := services.ClaimDailyBonus(user.ID)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	if alreadyClaimed {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "already claimed today"})
		return
	}

	total := chips + bonus
	message := fmt.Sprintf("Daily bonus claimed: %d chips", total)
	if bonus > 0 {
		message = fmt.Sprintf("Daily bonus claimed: %d chips (%d extra!)", total, bonus)
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"chips":   chips,
		"bonus":   bonus,
	})
}

// UpdateSettings lets a user change display name and avatar.
func (h *UserHandler) UpdateSettings(c *gin.Context) {
	user, _ := CurrentUser(c)

	var req struct {
		DisplayName string `json:"display_name"`
		AvatarURL   string `json:"avatar_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	updates := map[string]interface{}{}
	if req.DisplayName != "" {
		updates["display_name"] = utils.SanitizeText(req.DisplayName)
	}
	if req.AvatarURL != "" {
		updates["avatar_url"] = req.AvatarURL
	}
	if len(updates) > 0 {
		if err := db.DB.Model(user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
