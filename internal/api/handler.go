package api

import (
	"github.com/gin-gonic/gin"

	"relstack/internal/config"
	"relstack/internal/pipeline"
	"relstack/internal/session"
	"relstack/internal/store"
)

// Handler API 处理器
type Handler struct {
	store       *store.Store
	sessions    *session.Manager
	coordinator *pipeline.Coordinator
}

// NewHandler 创建 API 处理器
func NewHandler(st *store.Store, cfg config.ExcelConfig) *Handler {
	return &Handler{
		store:       st,
		sessions:    session.NewManager(),
		coordinator: pipeline.NewCoordinator(cfg, st),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 工作簿上传（SSE 流式进度）
	router.POST("/upload", h.Upload)

	// 会话查询
	router.GET("/sessions/:id", h.GetSession)
	router.GET("/sessions/:id/formulas", h.GetFormulas)
	router.GET("/sessions/:id/versions", h.GetVersions)

	// 服务栈生成
	router.POST("/sessions/:id/generate", h.Generate)

	// 处理历史
	router.GET("/history", h.GetHistory)
}
