package handler

import (
	"errors"
	"log"
	"net/http"

	"coachpay/internal/service"

	"github.com/gin-gonic/gin"
)

type SettingHandler struct {
	settingSvc *service.SettingService
}

func NewSettingHandler(settingSvc *service.SettingService) *SettingHandler {
	return &SettingHandler{settingSvc: settingSvc}
}

// List returns every runtime setting.
// GET /settings
func (h *SettingHandler) List(c *gin.Context) {
	settings, err := h.settingSvc.List()
	if err != nil {
		log.Printf("[setting] list: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list settings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// Update writes one runtime setting.
// PUT /settings/:key
func (h *SettingHandler) Update(c *gin.Context) {
	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}
	key := c.Param("key")
	if err := h.settingSvc.Update(key, req.Value); err != nil {
		if errors.Is(err, service.ErrUnknownSetting) {
			c.JSON(http.StatusNotFound, gin.H{"error": "unknown setting"})
			return
		}
		if errors.Is(err, service.ErrInvalidSettingValue) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid setting value"})
			return
		}
		log.Printf("[setting] update %s: %v", key, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}
