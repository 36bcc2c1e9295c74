package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetHistory 获取最近的处理历史
// GET /api/history?limit=20
func (h *Handler) GetHistory(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	uploads, err := h.store.ListUploadLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取上传历史失败"})
		return
	}

	stacks, err := h.store.ListStackLogs(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取生成历史失败"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploads": uploads,
		"stacks":  stacks,
	})
}
