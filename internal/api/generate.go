package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GenerateRequest 生成请求
type GenerateRequest struct {
	Version string `json:"version"` // 选中的发布版本
}

// Generate 写入选中版本并生成服务栈
// POST /api/sessions/:id/generate
func (h *Handler) Generate(c *gin.Context) {
	sess, ok := h.findSession(c)
	if !ok {
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求参数"})
		return
	}

	descriptors, err := h.coordinator.Generate(sess, req.Version)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"version":  req.Version,
		"services": descriptors,
	})
}
