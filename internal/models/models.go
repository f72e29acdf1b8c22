package models

import (
	"time"
)

// VideoSummary is the normalised metadata record shown in the info panel.
type VideoSummary struct {
	Title           string `json:"title"`
	DurationSeconds int64  `json:"duration_seconds"`
	DurationText    string `json:"duration_text"`
	Uploader        string `json:"uploader"`
	ViewCount       int64  `json:"view_count"`
	ViewsText       string `json:"views_text"`
	Description     string `json:"description"`
	ThumbnailURL    string `json:"thumbnail_url"`
	FormatCount     int    `json:"format_count"`
}

// Postprocessor describes a transform the engine applies after transfer.
type Postprocessor struct {
	Key              string `json:"key"`
	PreferredCodec   string `json:"preferred_codec"`
	PreferredQuality string `json:"preferred_quality"`
}

// DownloadConfig is derived from a Quality and the subtitles flag for one request.
type DownloadConfig struct {
	FormatFilter       string          `json:"format_filter"`
	OutputTemplate     string          `json:"output_template"`
	Postprocessors     []Postprocessor `json:"postprocessors,omitempty"`
	SubtitleLanguages  []string        `json:"subtitle_languages,omitempty"`
	WriteSubtitles     bool            `json:"write_subtitles"`
	WriteAutoSubtitles bool            `json:"write_auto_subtitles"`
	WriteInfoJSON      bool            `json:"write_info_json"`
}

// DownloadedFile is the single media file produced by one orchestrator run.
type DownloadedFile struct {
	Path       string    `json:"-"`
	FileName   string    `json:"file_name"`
	Extension  string    `json:"extension"`
	SizeBytes  int64     `json:"size_bytes"`
	Quality    Quality   `json:"quality"`
	SourceURL  string    `json:"source_url"`
	ArchiveURL string    `json:"archive_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ProgressStatus string

const (
	ProgressStatusIdle           ProgressStatus = "idle"
	ProgressStatusStarting       ProgressStatus = "starting"
	ProgressStatusDownloading    ProgressStatus = "downloading"
	ProgressStatusPostProcessing ProgressStatus = "post_processing"
	ProgressStatusFinished       ProgressStatus = "finished"
	ProgressStatusError          ProgressStatus = "error"
)

// IsFinished returns true once no further updates are expected.
func (ps ProgressStatus) IsFinished() bool {
	return ps == ProgressStatusFinished || ps == ProgressStatusError
}

// Progress is a snapshot of real transfer state reported by the engine.
type Progress struct {
	Status          ProgressStatus `json:"status"`
	DownloadedBytes int64          `json:"downloaded_bytes"`
	TotalBytes      int64          `json:"total_bytes"`
	Percent         int            `json:"percent"`
	ETASeconds      int            `json:"eta_seconds"`
	Speed           string         `json:"speed,omitempty"`
	FileName        string         `json:"file_name,omitempty"`
	Error           string         `json:"error,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type InfoRequest struct {
	URL string `json:"url" binding:"required"`
}

type DownloadRequest struct {
	URL              string `json:"url" binding:"required"`
	Quality          string `json:"quality"`
	IncludeSubtitles bool   `json:"include_subtitles"`
}

type InfoResponse struct {
	Status string        `json:"status"`
	Video  *VideoSummary `json:"video"`
}

type DownloadResponse struct {
	Status      string          `json:"status"`
	Message     string          `json:"message"`
	File        *DownloadedFile `json:"file"`
	SizeMB      float64         `json:"size_mb"`
	SizeText    string          `json:"size_text"`
	DownloadURL string          `json:"download_url"`
}

// SessionView reports the current settings of a UI session.
type SessionView struct {
	SessionID        string        `json:"session_id"`
	URL              string        `json:"url,omitempty"`
	Quality          Quality       `json:"quality"`
	IncludeSubtitles bool          `json:"include_subtitles"`
	HasInfo          bool          `json:"has_info"`
	Video            *VideoSummary `json:"video,omitempty"`
	LastFile         string        `json:"last_file,omitempty"`
}

type OptionsResponse struct {
	Qualities        []Quality `json:"qualities"`
	DefaultQuality   Quality   `json:"default_quality"`
	SupportedFormats []string  `json:"supported_formats"`
	Instructions     []string  `json:"instructions"`
}
