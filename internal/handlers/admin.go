package handlers

import (
	"net/http"
	"time"

	"bluffpot/internal/schedule"
	"bluffpot/internal/services"
	"bluffpot/internal/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes the maintenance RPCs: settling a single post, running
// the sweep on demand, and ensuring rounds exist. All are safe to invoke
// redundantly; settlement no-ops rather than erroring when called early.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

// SettlePost settles one post immediately if its reveal time has passed.
// Returns settled=false (not an error) when the post is already settled or
// not yet due.
func (h *AdminHandler) SettlePost(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	settled, err := services.SettlePost(postID)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settled": settled})
}

// RunSweep runs one settlement sweep pass and reports how many posts settled.
func (h *AdminHandler) RunSweep(c *gin.Context) {
	settled, err := services.GetSweepService().RunOnce()
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settled": settled})
}

// EnsureRounds makes sure today's and yesterday's rounds exist.
func (h *AdminHandler) EnsureRounds(c *gin.Context) {
	if err := services.EnsureCurrentRounds(); err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// EnsureRoundForDate creates (or returns) the round for an explicit date key.
func (h *AdminHandler) EnsureRoundForDate(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}
	roundID, err := services.EnsureRoundForDate(date)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"round_id": roundID})
}

// SeedDevRound inserts a round that opens immediately, for development.
func (h *AdminHandler) SeedDevRound(c *gin.Context) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	_ = c.ShouldBindJSON(&req)

	round, err := services.SeedDevRound(req.Prompt)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	phase := schedule.PhaseAt(time.Now().UnixMilli(), round.PostWindowStart, round.PostWindowEnd, round.RevealTime)
	c.JSON(http.StatusCreated, gin.H{"round": round, "phase": phase.String()})
}
