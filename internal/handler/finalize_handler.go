package handler

import (
	"errors"
	"log"
	"net/http"

	"coachpay/internal/service"
	"coachpay/pkg/monthkey"

	"github.com/gin-gonic/gin"
)

type FinalizeHandler struct {
	finalizeSvc *service.FinalizeService
}

func NewFinalizeHandler(finalizeSvc *service.FinalizeService) *FinalizeHandler {
	return &FinalizeHandler{finalizeSvc: finalizeSvc}
}

func monthParam(c *gin.Context) (string, bool) {
	month := c.Param("month")
	if !monthkey.Valid(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return "", false
	}
	return month, true
}

// Finalize closes the month. A second call returns 409 instead of silently
// rewriting finalized reports.
// POST /months/:month/finalize
func (h *FinalizeHandler) Finalize(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	res, err := h.finalizeSvc.Finalize(month)
	switch {
	case errors.Is(err, service.ErrNoReports):
		c.JSON(http.StatusNotFound, gin.H{"error": "no reports for month"})
	case errors.Is(err, service.ErrMonthFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "month already finalized"})
	case err != nil:
		log.Printf("[finalize] %s: %v", month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "finalize failed"})
	default:
		c.JSON(http.StatusOK, res)
	}
}

// Reopen reverses a finalize so reports can be rebuilt.
// POST /months/:month/reopen
func (h *FinalizeHandler) Reopen(c *gin.Context) {
	month, ok := monthParam(c)
	if !ok {
		return
	}
	err := h.finalizeSvc.Reopen(month)
	switch {
	case errors.Is(err, service.ErrMonthNotFinalized):
		c.JSON(http.StatusConflict, gin.H{"error": "month is not finalized"})
	case err != nil:
		log.Printf("[finalize] reopen %s: %v", month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "reopen failed"})
	default:
		c.JSON(http.StatusOK, gin.H{"month": month, "state": "OPEN"})
	}
}
