package metadata

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/denisAlshanov/vidgrab/internal/metrics"
	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

const unknown = "Unknown"

type Fetcher struct {
	engine  extractor.Engine
	timeout time.Duration
}

// NewFetcher creates a metadata fetcher. A zero timeout leaves the caller's deadline in place.
func NewFetcher(engine extractor.Engine, timeout time.Duration) *Fetcher {
	return &Fetcher{
		engine:  engine,
		timeout: timeout,
	}
}

// Fetch resolves url in metadata-only mode and normalises the result.
// The URL is not validated here; the engine rejects what it cannot handle.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*models.VideoSummary, error) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	utils.LogDebug(ctx, "Fetching video info", utils.Fields{"url": url})

	raw, err := f.engine.ExtractInfo(ctx, url)
	if err != nil {
		metrics.MetadataFetches.WithLabelValues(metrics.ResultFailure).Inc()
		if !errors.Is(err, utils.ErrMetadataFetch) {
			err = fmt.Errorf("%w: %v", utils.ErrMetadataFetch, err)
		}
		return nil, err
	}

	metrics.MetadataFetches.WithLabelValues(metrics.ResultSuccess).Inc()
	return Summarize(raw), nil
}

// Summarize maps the engine record onto a VideoSummary, defaulting absent fields.
func Summarize(raw *extractor.RawInfo) *models.VideoSummary {
	if raw == nil {
		raw = &extractor.RawInfo{}
	}

	var duration int64
	if raw.Duration != nil && *raw.Duration > 0 && !math.IsInf(*raw.Duration, 0) {
		duration = int64(*raw.Duration)
	}

	var views int64
	if raw.ViewCount != nil && *raw.ViewCount > 0 {
		views = *raw.ViewCount
	}

	summary := &models.VideoSummary{
		Title:           stringOr(raw.Title, unknown),
		DurationSeconds: duration,
		Uploader:        stringOr(raw.Uploader, unknown),
		ViewCount:       views,
		Description:     utils.TruncateDescription(stringOr(raw.Description, "")),
		ThumbnailURL:    stringOr(raw.Thumbnail, ""),
		FormatCount:     len(raw.Formats),
	}
	summary.DurationText = utils.FormatDuration(summary.DurationSeconds)
	summary.ViewsText = utils.FormatViews(summary.ViewCount)

	return summary
}

func stringOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}
	return *value
}
