package handlers

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/metadata"
	"github.com/denisAlshanov/vidgrab/internal/services/session"
	"github.com/denisAlshanov/vidgrab/internal/services/storage"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

const fileRoute = "/api/v1/video/file"

type VideoHandler struct {
	fetcher   *metadata.Fetcher
	archiver  *storage.Archiver
	keepAlive time.Duration
}

// NewVideoHandler creates the video handler. archiver may be nil when
// archiving is disabled.
func NewVideoHandler(fetcher *metadata.Fetcher, archiver *storage.Archiver, keepAlive time.Duration) *VideoHandler {
	if keepAlive <= 0 {
		keepAlive = 15 * time.Second
	}
	return &VideoHandler{
		fetcher:   fetcher,
		archiver:  archiver,
		keepAlive: keepAlive,
	}
}

// GetInfo godoc
// @Summary Fetch video metadata
// @Description Resolve a video URL in metadata-only mode and store the summary in the session
// @Tags video
// @Accept json
// @Produce json
// @Param request body models.InfoRequest true "Video URL"
// @Success 200 {object} models.InfoResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/video/info [post]
func (h *VideoHandler) GetInfo(c *gin.Context) {
	ctx := c.Request.Context()

	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		errorResponse(c, utils.NewValidationError("URL is required", nil))
		return
	}

	summary, err := h.fetcher.Fetch(ctx, url)
	if err != nil {
		utils.LogError(ctx, "Failed to fetch video info", err, utils.Fields{"url": url})
		errorResponse(c, utils.ToAppError(err))
		return
	}

	sess.SetSummary(url, summary)

	utils.LogInfo(ctx, "Fetched video info", utils.Fields{
		"url":   url,
		"title": summary.Title,
	})

	c.JSON(http.StatusOK, models.InfoResponse{
		Status: "success",
		Video:  summary,
	})
}

// Download godoc
// @Summary Download a video
// @Description Download the video or its audio track at the selected quality. Requires a prior metadata fetch in the same session.
// @Tags video
// @Accept json
// @Produce json
// @Param request body models.DownloadRequest true "Download options"
// @Success 200 {object} models.DownloadResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Failure 412 {object} map[string]interface{}
// @Failure 502 {object} map[string]interface{}
// @Router /api/v1/video/download [post]
func (h *VideoHandler) Download(c *gin.Context) {
	ctx := c.Request.Context()

	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req models.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, utils.NewValidationError("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		}))
		return
	}

	url := strings.TrimSpace(req.URL)
	if url == "" {
		errorResponse(c, utils.NewValidationError("URL is required", nil))
		return
	}

	quality := models.ParseQuality(req.Quality)
	sess.SetRequest(url, quality, req.IncludeSubtitles)

	if !sess.HasInfo() {
		errorResponse(c, utils.NewInfoRequiredError())
		return
	}

	orchestrator, err := sess.Orchestrator()
	if err != nil {
		utils.LogError(ctx, "Failed to prepare work directory", err)
		errorResponse(c, utils.NewInternalError())
		return
	}
	if orchestrator.Running() {
		errorResponse(c, utils.NewDownloadInProgressError())
		return
	}

	file, err := orchestrator.Download(ctx, url, quality, req.IncludeSubtitles, relayProgress(sess))
	if err != nil {
		if errors.Is(err, utils.ErrBusy) {
			errorResponse(c, utils.NewDownloadInProgressError())
			return
		}
		utils.LogError(ctx, "Download failed", err, utils.Fields{
			"url":     url,
			"quality": quality.String(),
		})
		sess.UpdateProgress(models.Progress{
			Status:     models.ProgressStatusError,
			ETASeconds: -1,
			Error:      err.Error(),
		})
		errorResponse(c, utils.ToAppError(err))
		return
	}

	if h.archiver != nil {
		h.archive(ctx, sess, file)
	}

	sess.SetLastFile(file)
	sess.UpdateProgress(models.Progress{
		Status:          models.ProgressStatusFinished,
		DownloadedBytes: file.SizeBytes,
		TotalBytes:      file.SizeBytes,
		Percent:         100,
		ETASeconds:      0,
		FileName:        file.FileName,
	})

	utils.LogInfo(ctx, "Download completed", utils.Fields{
		"file":       file.FileName,
		"size_bytes": file.SizeBytes,
		"quality":    quality.String(),
	})

	c.JSON(http.StatusOK, models.DownloadResponse{
		Status:      "success",
		Message:     "Download completed successfully!",
		File:        file,
		SizeMB:      utils.SizeMB(file.SizeBytes),
		SizeText:    utils.FormatSizeMB(file.SizeBytes),
		DownloadURL: fileRoute,
	})
}

// archive uploads file to object storage. Failures leave the download intact.
func (h *VideoHandler) archive(ctx context.Context, sess *session.Session, file *models.DownloadedFile) {
	archiveURL, err := h.archiver.Archive(ctx, sess.ID, file, sess.Summary())
	if err != nil {
		utils.LogWarn(ctx, "Failed to archive download", utils.Fields{
			"file":  file.FileName,
			"error": err.Error(),
		})
		return
	}
	file.ArchiveURL = archiveURL
}

// relayProgress stores engine updates on the session. The engine reports
// "finished" per transferred stream, so terminal states are held back until
// the orchestrator returns.
func relayProgress(sess *session.Session) func(models.Progress) {
	return func(p models.Progress) {
		if p.Status.IsFinished() {
			p.Status = models.ProgressStatusPostProcessing
		}
		sess.UpdateProgress(p)
	}
}

// GetFile godoc
// @Summary Download the last file
// @Description Stream the file produced by the last successful download in this session
// @Tags video
// @Produce application/octet-stream
// @Success 200 {file} binary "Downloaded file"
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/video/file [get]
func (h *VideoHandler) GetFile(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		errorResponse(c, utils.NewFileNotFoundError())
		return
	}

	file := sess.LastFile()
	if file == nil {
		errorResponse(c, utils.NewFileNotFoundError())
		return
	}

	if _, err := os.Stat(file.Path); err != nil {
		utils.LogWarn(c.Request.Context(), "Downloaded file is gone", utils.Fields{
			"file":  file.FileName,
			"error": err.Error(),
		})
		errorResponse(c, utils.NewFileNotFoundError())
		return
	}

	// Set before FileAttachment so the extension-based type is not used
	c.Header("Content-Type", "application/octet-stream")
	c.FileAttachment(file.Path, file.FileName)
}

// GetProgress godoc
// @Summary Current download progress
// @Tags video
// @Produce json
// @Success 200 {object} models.Progress
// @Router /api/v1/video/progress [get]
func (h *VideoHandler) GetProgress(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		c.JSON(http.StatusOK, session.IdleProgress())
		return
	}
	c.JSON(http.StatusOK, sess.Progress())
}

// StreamProgress godoc
// @Summary Stream download progress
// @Description Server-sent events carrying progress snapshots. The stream ends after the next terminal state.
// @Tags video
// @Produce text/event-stream
// @Success 200 {object} models.Progress
// @Success 204 "No session yet"
// @Router /api/v1/video/progress/stream [get]
func (h *VideoHandler) StreamProgress(c *gin.Context) {
	ctx := c.Request.Context()

	// 204 tells EventSource not to reconnect
	sess, ok := currentSession(c)
	if !ok {
		c.Status(http.StatusNoContent)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	progress, changed := sess.WatchProgress()
	c.SSEvent("progress", progress)
	c.Writer.Flush()

	keepAlive := time.NewTicker(h.keepAlive)
	defer keepAlive.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			c.Writer.Flush()
		case <-changed:
			progress, changed = sess.WatchProgress()
			c.SSEvent("progress", progress)
			c.Writer.Flush()
			if progress.Status.IsFinished() {
				return
			}
		}
	}
}
