package handler

import (
	"errors"
	"log"
	"net/http"

	"coachpay/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReferralHandler struct {
	referralSvc *service.ReferralService
}

func NewReferralHandler(referralSvc *service.ReferralService) *ReferralHandler {
	return &ReferralHandler{referralSvc: referralSvc}
}

// List returns the coach's referral events for a month.
// GET /coaches/:id/referrals?month=YYYY-MM
func (h *ReferralHandler) List(c *gin.Context) {
	coachID, ok := coachIDParam(c)
	if !ok {
		return
	}
	month, ok := monthQuery(c)
	if !ok {
		return
	}
	events, err := h.referralSvc.EventsForCoach(coachID, month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coach not found"})
			return
		}
		log.Printf("[referral] list coach=%d month=%s: %v", coachID, month, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list referrals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coach_id": coachID, "month": month, "events": events})
}

// Record ingests one referral event and credits the flat commission.
// Upgrade events normally arrive via the member upgrade endpoint; this
// accepts them too for backfills.
// POST /referrals
func (h *ReferralHandler) Record(c *gin.Context) {
	var req struct {
		CoachID  uint   `json:"coach_id" binding:"required"`
		MemberID uint   `json:"member_id" binding:"required"`
		Category string `json:"category" binding:"required,oneof=PHONE_REFERRAL WALKIN_REFERRAL MEMBERSHIP_UPGRADE"`
		Month    string `json:"month" binding:"required,month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid referral payload"})
		return
	}
	ev, err := h.referralSvc.Record(req.CoachID, req.MemberID, req.Category, req.Month)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "coach or member not found"})
			return
		}
		log.Printf("[referral] record: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record referral"})
		return
	}
	c.JSON(http.StatusCreated, ev)
}
