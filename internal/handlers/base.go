package handlers

import (
	"errors"
	"net/http"

	"bluffpot/internal/middleware"
	"bluffpot/internal/models"
	"bluffpot/internal/services"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if n := utils.StringToInt(s); n > 0 {
		return n
	}
	return def
}

// CurrentUser pulls the session user loaded by middleware.LoadUser.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	user, exists := c.Get(middleware.CheckUserKey)
	if !exists {
		return nil, false
	}
	return user.(*models.User), true
}

// AbortWithServiceError maps service errors onto HTTP status codes:
// not-found 404, validation 400, everything else 500.
func AbortWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrPostNotFound),
		errors.Is(err, services.ErrRoundNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrWagerInvalid),
		errors.Is(err, services.ErrStakeInvalid),
		errors.Is(err, services.ErrInsufficientChips),
		errors.Is(err, services.ErrOutsidePostingWindow),
		errors.Is(err, services.ErrAlreadyPosted),
		errors.Is(err, services.ErrInvalidGuess),
		errors.Is(err, services.ErrSelfVote),
		errors.Is(err, services.ErrVotingClosed),
		errors.Is(err, services.ErrAlreadyVoted),
		errors.Is(err, services.ErrVotesNotReady),
		errors.Is(err, services.ErrImageTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
