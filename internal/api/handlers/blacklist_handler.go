package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Godasy/visitor-management-system/internal/api/middleware"
	"github.com/Godasy/visitor-management-system/internal/services"
	"github.com/Godasy/visitor-management-system/internal/store"
)

type BlacklistHandler struct {
	service *services.BlacklistService
}

func NewBlacklistHandler(service *services.BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{service: service}
}

// List handles GET /api/blacklist
func (h *BlacklistHandler) List(c *gin.Context) {
	entries, err := h.service.List()
	if err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("failed to list blacklist")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "failed to list blacklist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

// Add handles POST /api/blacklist/add
func (h *BlacklistHandler) Add(c *gin.Context) {
	var req struct {
		IP     string `json:"ip"`
		Remark string `json:"remark"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "invalid request body"})
		return
	}

	if err := h.service.Add(req.IP, req.Remark); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingIP):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "ip is required"})
		case errors.Is(err, store.ErrDuplicateIP):
			c.JSON(http.StatusOK, gin.H{"success": false, "msg": "ip already in blacklist"})
		default:
			middleware.GetRequestLogger(c).WithError(err).Error("failed to add blacklist entry")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "failed to add blacklist entry"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "ip added to blacklist"})
}

// Delete handles DELETE /api/blacklist/delete/:id
func (h *BlacklistHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "msg": "invalid ID"})
		return
	}

	if err := h.service.Remove(uint(id)); err != nil {
		middleware.GetRequestLogger(c).WithError(err).Error("failed to delete blacklist entry")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "msg": "failed to delete blacklist entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "msg": "blacklist entry deleted"})
}
