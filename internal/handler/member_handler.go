package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"coachpay/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MemberHandler is the ingestion surface for the external registration
// system. Member management UI lives elsewhere; these endpoints exist so the
// onboarding bonus and upgrade accounting fire at the right moments.
type MemberHandler struct {
	enrollmentSvc *service.EnrollmentService
}

func NewMemberHandler(enrollmentSvc *service.EnrollmentService) *MemberHandler {
	return &MemberHandler{enrollmentSvc: enrollmentSvc}
}

// Register ingests a new member and pays the coach's one-time onboarding
// bonus.
// POST /members
func (h *MemberHandler) Register(c *gin.Context) {
	var req struct {
		FullName       string `json:"full_name" binding:"required"`
		DurationMonths int    `json:"duration_months" binding:"required,oneof=1 3 6 12"`
		Start          string `json:"start" binding:"omitempty,datetime=2006-01-02"`
		CoachID        uint   `json:"coach_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid registration payload"})
		return
	}
	start := time.Now().UTC()
	if req.Start != "" {
		start, _ = time.ParseInLocation("2006-01-02", req.Start, time.UTC)
	}
	m, err := h.enrollmentSvc.Register(req.FullName, req.DurationMonths, start, req.CoachID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coach not found"})
			return
		}
		log.Printf("[member] register: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusCreated, m)
}

// Upgrade re-anchors a member's subscription on a new plan.
// POST /members/:id/upgrade
func (h *MemberHandler) Upgrade(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member id"})
		return
	}
	var req struct {
		DurationMonths int `json:"duration_months" binding:"required,oneof=1 3 6 12"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid upgrade payload"})
		return
	}
	m, err := h.enrollmentSvc.Upgrade(uint(id), req.DurationMonths, time.Now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		log.Printf("[member] upgrade %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upgrade failed"})
		return
	}
	c.JSON(http.StatusOK, m)
}
