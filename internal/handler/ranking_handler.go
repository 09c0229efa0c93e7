package handler

import (
	"log"
	"net/http"

	"coachpay/internal/service"

	"github.com/gin-gonic/gin"
)

type RankingHandler struct {
	rankingSvc *service.RankingService
}

func NewRankingHandler(rankingSvc *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingSvc: rankingSvc}
}

// GetLeaderboard serves the cached monthly leaderboard, recomputing only
// when the snapshot is missing or stale.
// GET /rankings?month=YYYY-MM
func (h *RankingHandler) GetLeaderboard(c *gin.Context) {
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	snap, err := h.rankingSvc.Leaderboard(month)
	if err != nil {
		log.Printf("[ranking] leaderboard %s: %v", month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute leaderboard"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// Recompute forces a fresh snapshot.
// POST /rankings/recompute
func (h *RankingHandler) Recompute(c *gin.Context) {
	var req struct {
		Month string `json:"month" binding:"required,month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	snap, err := h.rankingSvc.Recompute(req.Month)
	if err != nil {
		log.Printf("[ranking] recompute %s: %v", req.Month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not recompute leaderboard"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
