package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/web"
)

type UIHandler struct{}

func NewUIHandler() *UIHandler {
	return &UIHandler{}
}

// Index serves the single-page UI.
func (h *UIHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", web.IndexHTML)
}
