package handler

import (
	"log"
	"net/http"

	"coachpay/internal/service"

	"github.com/gin-gonic/gin"
)

type PTHandler struct {
	ptSvc *service.PTService
}

func NewPTHandler(ptSvc *service.PTService) *PTHandler {
	return &PTHandler{ptSvc: ptSvc}
}

// BackfillCoaches resolves legacy name-matched PT sessions to coach FKs.
// POST /pt/backfill-coaches
func (h *PTHandler) BackfillCoaches(c *gin.Context) {
	res, err := h.ptSvc.BackfillSessionCoaches()
	if err != nil {
		log.Printf("[pt] backfill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "backfill failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}

// Attribution reports how the month's PT receipts resolved, for audit.
// GET /pt/attribution?month=YYYY-MM
func (h *PTHandler) Attribution(c *gin.Context) {
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	_, att, err := h.ptSvc.RevenueByCoach(month)
	if err != nil {
		log.Printf("[pt] attribution %s: %v", month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "attribution failed"})
		return
	}
	c.JSON(http.StatusOK, att)
}
