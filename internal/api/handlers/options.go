package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/internal/models"
)

var (
	supportedFormats = []string{
		"Video: MP4, WebM",
		"Audio: MP3 (192kbps)",
		"Subtitles: SRT, VTT",
	}

	instructions = []string{
		"Paste the video URL",
		"Click 'Get Video Info'",
		"Select quality options",
		"Click 'Download'",
		"Wait for the download to complete",
	}
)

type OptionsHandler struct{}

func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// GetOptions godoc
// @Summary Download options
// @Description Quality choices, supported formats and usage instructions shown in the sidebar
// @Tags options
// @Produce json
// @Success 200 {object} models.OptionsResponse
// @Router /api/v1/options [get]
func (h *OptionsHandler) GetOptions(c *gin.Context) {
	c.JSON(http.StatusOK, models.OptionsResponse{
		Qualities:        models.Qualities(),
		DefaultQuality:   models.QualityHighest,
		SupportedFormats: supportedFormats,
		Instructions:     instructions,
	})
}
