package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/internal/services/session"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// GetSession godoc
// @Summary Current settings
// @Description Return the quality, subtitles choice and cached metadata of this session
// @Tags session
// @Produce json
// @Success 200 {object} models.SessionView
// @Router /api/v1/session [get]
func (h *SessionHandler) GetSession(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusOK, session.DefaultView())
		return
	}
	c.JSON(http.StatusOK, sess.View())
}

// ClearCache godoc
// @Summary Clear cached metadata
// @Description Forget the stored video info and last downloaded file. A new info fetch is required before the next download.
// @Tags session
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/session/cache [delete]
func (h *SessionHandler) ClearCache(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	sess.ClearCache()
	utils.LogInfo(c.Request.Context(), "Session cache cleared")

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Cache cleared!",
	})
}
