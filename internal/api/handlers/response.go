package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/internal/api/middleware"
	"github.com/denisAlshanov/vidgrab/internal/services/session"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

func errorResponse(c *gin.Context, err *utils.AppError) {
	c.JSON(err.StatusCode, gin.H{
		"error":      err,
		"request_id": c.GetString("request_id"),
		"timestamp":  time.Now().Format(time.RFC3339),
	})
}

// currentSession returns the session of a read-only request, if the visitor has one.
func currentSession(c *gin.Context) (*session.Session, bool) {
	return middleware.GetSession(c)
}

// requireSession writes an internal error when the session middleware did not run.
func requireSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		utils.LogError(c.Request.Context(), "Session missing from request context", nil)
		errorResponse(c, utils.NewInternalError())
		return nil, false
	}
	return sess, true
}
