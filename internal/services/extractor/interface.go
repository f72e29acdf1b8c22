package extractor

import (
	"context"
	"encoding/json"

	"github.com/denisAlshanov/vidgrab/internal/models"
)

// PostprocessorExtractAudio is the only post-processor the orchestrator requests.
const PostprocessorExtractAudio = "FFmpegExtractAudio"

// ProgressFunc receives real transfer progress while a download runs.
type ProgressFunc func(models.Progress)

// Engine is the external media extraction engine. Every URL resolution,
// format selection, transfer and transcode happens behind it.
type Engine interface {
	// ExtractInfo resolves metadata only. No media bytes are transferred.
	ExtractInfo(ctx context.Context, url string) (*RawInfo, error)

	// Download performs the transfer described by cfg and returns the path of
	// the produced file as reported by the engine, or "" when it reported none.
	Download(ctx context.Context, url string, cfg models.DownloadConfig, progress ProgressFunc) (string, error)
}

// RawInfo is the subset of the engine's metadata record we read. Any field may be absent.
type RawInfo struct {
	ID          *string           `json:"id"`
	Title       *string           `json:"title"`
	Duration    *float64          `json:"duration"`
	Uploader    *string           `json:"uploader"`
	ViewCount   *int64            `json:"view_count"`
	Description *string           `json:"description"`
	Thumbnail   *string           `json:"thumbnail"`
	WebpageURL  *string           `json:"webpage_url"`
	Formats     []json.RawMessage `json:"formats"`
}
