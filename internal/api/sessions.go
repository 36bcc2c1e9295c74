package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"relstack/internal/model"
	"relstack/internal/session"
)

// SessionResponse 会话状态响应
type SessionResponse struct {
	ID              string             `json:"id"`
	Filename        string             `json:"filename"`
	State           model.SessionState `json:"state"`
	LastError       string             `json:"lastError,omitempty"`
	SheetNames      []string           `json:"sheetNames"`
	FormulaCount    int                `json:"formulaCount"`
	VersionCount    int                `json:"versionCount"`
	Warnings        []string           `json:"warnings"`
	SelectedVersion string             `json:"selectedVersion,omitempty"`
}

// GetSession 获取会话状态与汇总
// GET /api/sessions/:id
func (h *Handler) GetSession(c *gin.Context) {
	sess, ok := h.findSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, SessionResponse{
		ID:              sess.ID,
		Filename:        sess.Filename,
		State:           sess.State(),
		LastError:       sess.LastError(),
		SheetNames:      sess.SheetNames(),
		FormulaCount:    len(sess.Records()),
		VersionCount:    len(sess.Versions()),
		Warnings:        sess.Warnings(),
		SelectedVersion: sess.SelectedVersion(),
	})
}

// GetFormulas 获取分类后的公式记录
// GET /api/sessions/:id/formulas
func (h *Handler) GetFormulas(c *gin.Context) {
	sess, ok := h.findSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"formulas": sess.Records(),
	})
}

// GetVersions 获取提取到的版本列表
// GET /api/sessions/:id/versions
func (h *Handler) GetVersions(c *gin.Context) {
	sess, ok := h.findSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"versions": sess.Versions(),
	})
}

// findSession 按路径参数查找会话，找不到时直接写 404
func (h *Handler) findSession(c *gin.Context) (*session.Session, bool) {
	sess, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "会话不存在或已过期"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return nil, false
	}
	return sess, true
}
