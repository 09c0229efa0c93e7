package handler

import (
	"log"
	"net/http"

	"coachpay/internal/service"

	"github.com/gin-gonic/gin"
)

type CommissionHandler struct {
	payrollSvc *service.PayrollService
}

func NewCommissionHandler(payrollSvc *service.PayrollService) *CommissionHandler {
	return &CommissionHandler{payrollSvc: payrollSvc}
}

// SyncRecurring runs the recurring-bonus batch for a month. Safe to call
// repeatedly: duplicates are counted, not paid twice.
// POST /commissions/sync
func (h *CommissionHandler) SyncRecurring(c *gin.Context) {
	var req struct {
		Month string `json:"month" binding:"required,month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return
	}
	res, err := h.payrollSvc.SyncRecurring(req.Month)
	if err != nil {
		log.Printf("[commission] sync %s: %v", req.Month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync failed"})
		return
	}
	c.JSON(http.StatusOK, res)
}
