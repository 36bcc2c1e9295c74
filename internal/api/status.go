package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	ActiveSessions int `json:"activeSessions"` // 活跃会话数
	TotalUploads   int `json:"totalUploads"`   // 历史上传总数
	TotalStacks    int `json:"totalStacks"`    // 历史生成总数
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	uploads, err := h.store.CountUploads()
	if err != nil {
		uploads = 0
	}
	stacks, err := h.store.CountStacks()
	if err != nil {
		stacks = 0
	}

	c.JSON(http.StatusOK, StatusResponse{
		ActiveSessions: h.sessions.Count(),
		TotalUploads:   uploads,
		TotalStacks:    stacks,
	})
}
