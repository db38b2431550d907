package handlers

import (
	"net/http"
	"time"

	"bluffpot/internal/services"

	"github.com/gin-gonic/gin"
)

type RoundHandler struct{}

func NewRoundHandler() *RoundHandler {
	return &RoundHandler{}
}

// Active returns the round driving the UI right now with its derived phase,
// status payload and challenge label.
func (h *RoundHandler) Active(c *gin.Context) {
	active, err := services.GetActiveRound(time.Now().UnixMilli())
	if err != nil {
		if err == services.ErrRoundNotFound {
			c.JSON(http.StatusOK, gin.H{"round": nil})
			return
		}
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, active)
}

// ByDate returns the round for a YYYY-MM-DD date key.
func (h *RoundHandler) ByDate(c *gin.Context) {
	round, err := services.GetRoundByDate(c.Param("date"))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": round})
}

// List returns recent rounds, newest first.
func (h *RoundHandler) List(c *gin.Context) {
	limit := 30
	if l := c.Query("limit"); l != "" {
		limit = atoiDefault(l, 30)
	}
	rounds, err := services.ListRounds(limit)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rounds": rounds})
}

// Posts lists a round's posts for the feed.
func (h *RoundHandler) Posts(c *gin.Context) {
	round, err := services.GetRoundByDate(c.Param("date"))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	posts, err := services.ListPostsByRound(round.ID, atoiDefault(c.Query("limit"), 50))
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"round": round, "posts": posts})
}
