package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Godasy/visitor-management-system/internal/api/middleware"
	"github.com/Godasy/visitor-management-system/internal/services"
)

type VisitorHandler struct {
	recorder  *services.RecorderService
	stats     *services.StatsService
	blacklist *services.BlacklistService
}

func NewVisitorHandler(recorder *services.RecorderService, stats *services.StatsService, blacklist *services.BlacklistService) *VisitorHandler {
	return &VisitorHandler{recorder: recorder, stats: stats, blacklist: blacklist}
}

// Record handles GET /api/visitor/record
func (h *VisitorHandler) Record(c *gin.Context) {
	result, err := h.recorder.Record(
		c.Request.Context(),
		c.Request.RemoteAddr,
		c.GetHeader("X-Forwarded-For"),
		c.GetHeader("User-Agent"),
	)
	if err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("failed to record visit")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "failed to record visit"})
		return
	}

	if result.Blocked {
		c.JSON(http.StatusOK, gin.H{
			"success":   false,
			"msg":       "ip is blacklisted",
			"isBlocked": true,
			"visitorIp": result.VisitorIP,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"msg":       "visit recorded",
		"isBlocked": false,
		"visitorIp": result.VisitorIP,
		"region":    result.Region,
		"visitTime": result.VisitTime,
	})
}

// Stats handles GET /api/visitor/stats
func (h *VisitorHandler) Stats(c *gin.Context) {
	overview, err := h.stats.GetOverview()
	if err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("failed to assemble statistics")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "failed to load statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": overview})
}

// Reset handles POST /api/visitor/reset
func (h *VisitorHandler) Reset(c *gin.Context) {
	var req struct {
		AdminKey string `json:"adminKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "invalid request body"})
		return
	}

	if err := h.blacklist.ResetVisits(req.AdminKey); err != nil {
		if errors.Is(err, services.ErrUnauthorized) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "msg": "invalid admin key"})
			return
		}
		middleware.GetRequestLogger(c).WithError(err).Error("failed to reset visit records")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "failed to reset visit records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "visit records reset"})
}
