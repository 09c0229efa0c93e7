package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"coachpay/internal/service"
	"coachpay/pkg/monthkey"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportHandler struct {
	reportSvc *service.ReportService
}

func NewReportHandler(reportSvc *service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

func coachIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid coach id"})
		return 0, false
	}
	return uint(id), true
}

func monthQuery(c *gin.Context) (string, bool) {
	month := c.DefaultQuery("month", monthkey.Current())
	if !monthkey.Valid(month) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be YYYY-MM"})
		return "", false
	}
	return month, true
}

// GetReport returns the coach's monthly report, building it on demand.
// Finalized months are served as stored.
// GET /coaches/:id/report?month=YYYY-MM
func (h *ReportHandler) GetReport(c *gin.Context) {
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	rep, err := h.reportSvc.GetOrBuild(coachID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coach not found"})
			return
		}
		log.Printf("[report] build coach=%d month=%s: %v", coachID, month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not build report"})
		return
	}
	c.JSON(http.StatusOK, rep)
}

// GetEntries returns the coach's individual ledger entries for the month.
// GET /coaches/:id/entries?month=YYYY-MM
func (h *ReportHandler) GetEntries(c *gin.Context) {
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	entries, err := h.reportSvc.Entries(coachID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coach not found"})
			return
		}
		log.Printf("[report] entries coach=%d month=%s: %v", coachID, month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coach_id": coachID, "month": month, "entries": entries})
}

// GetIncome returns the live income view: base salary plus every bonus
// category plus the PT commission at the coach's effective rate.
// GET /coaches/:id/income?month=YYYY-MM
func (h *ReportHandler) GetIncome(c *gin.Context) {
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	inc, err := h.reportSvc.LiveIncome(coachID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coach not found"})
			return
		}
		log.Printf("[report] income coach=%d month=%s: %v", coachID, month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute income"})
		return
	}
	c.JSON(http.StatusOK, inc)
}
