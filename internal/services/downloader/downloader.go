package downloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/denisAlshanov/vidgrab/internal/metrics"
	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

// MediaExtensions are the output extensions recognised when scanning the work directory.
var MediaExtensions = []string{".mp4", ".mp3", ".webm", ".mkv"}

// Orchestrator downloads into a private work directory created at
// construction. The directory is not cleaned between calls.
type Orchestrator struct {
	engine  extractor.Engine
	workDir string
	timeout time.Duration

	mu      sync.Mutex
	running bool
}

func NewOrchestrator(engine extractor.Engine, baseDir string, timeout time.Duration) (*Orchestrator, error) {
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create base directory: %w", err)
		}
	}

	workDir, err := os.MkdirTemp(baseDir, "vidgrab_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create work directory: %w", err)
	}

	return &Orchestrator{
		engine:  engine,
		workDir: workDir,
		timeout: timeout,
	}, nil
}

func (o *Orchestrator) WorkDir() string {
	return o.workDir
}

// Close removes the work directory and everything downloaded into it.
func (o *Orchestrator) Close() error {
	return os.RemoveAll(o.workDir)
}

// Running reports whether a download is in flight.
func (o *Orchestrator) Running() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.running
}

// Download fetches url at the requested quality and returns the produced file.
// A second call while one is running fails with utils.ErrBusy and never
// invokes progress. Otherwise the first snapshot delivered is "starting".
func (o *Orchestrator) Download(ctx context.Context, url string, quality models.Quality, includeSubtitles bool, progress extractor.ProgressFunc) (*models.DownloadedFile, error) {
	if !o.acquire() {
		return nil, utils.ErrBusy
	}
	defer o.release()

	if progress != nil {
		progress(models.Progress{
			Status:     models.ProgressStatusStarting,
			ETASeconds: -1,
			UpdatedAt:  time.Now(),
		})
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	cfg := BuildConfig(quality, includeSubtitles)
	cfg.OutputTemplate = filepath.Join(o.workDir, cfg.OutputTemplate)

	label := metrics.QualityLabel(quality)
	utils.LogInfo(ctx, "Starting download", utils.Fields{
		"url":       url,
		"quality":   quality.String(),
		"format":    cfg.FormatFilter,
		"subtitles": cfg.WriteSubtitles,
	})

	start := time.Now()
	reported, err := o.engine.Download(ctx, url, cfg, progress)
	metrics.DownloadDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.Downloads.WithLabelValues(label, metrics.ResultFailure).Inc()
		if !errors.Is(err, utils.ErrDownload) {
			err = fmt.Errorf("%w: %v", utils.ErrDownload, err)
		}
		return nil, err
	}

	path, err := o.locate(reported)
	if err != nil {
		metrics.Downloads.WithLabelValues(label, metrics.ResultFailure).Inc()
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		metrics.Downloads.WithLabelValues(label, metrics.ResultFailure).Inc()
		return nil, fmt.Errorf("%w: %v", utils.ErrNoOutputFile, err)
	}

	metrics.Downloads.WithLabelValues(label, metrics.ResultSuccess).Inc()
	metrics.DownloadedBytes.Add(float64(info.Size()))

	return &models.DownloadedFile{
		Path:      path,
		FileName:  filepath.Base(path),
		Extension: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		SizeBytes: info.Size(),
		Quality:   quality,
		SourceURL: url,
		CreatedAt: time.Now(),
	}, nil
}

// locate prefers the path the engine reported and falls back to scanning
// the work directory.
func (o *Orchestrator) locate(reported string) (string, error) {
	if reported != "" {
		if o.owns(reported) {
			if info, err := os.Stat(reported); err == nil && info.Mode().IsRegular() {
				return reported, nil
			}
		}
		utils.GetLogger().WithField("reported", reported).Warn("Engine reported an unusable output path, scanning work directory")
	}
	return FindOutputFile(o.workDir)
}

func (o *Orchestrator) owns(path string) bool {
	rel, err := filepath.Rel(o.workDir, filepath.Clean(path))
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// FindOutputFile returns the most recently modified file among the
// immediate entries of dir that carries a recognised media extension.
func FindOutputFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrNoOutputFile, err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, entry := range entries {
		if entry.IsDir() || !IsMediaFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest = filepath.Join(dir, entry.Name())
			newestTime = info.ModTime()
		}
	}

	if newest == "" {
		return "", utils.ErrNoOutputFile
	}
	return newest, nil
}

// IsMediaFile reports whether name ends in one of MediaExtensions.
func IsMediaFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, known := range MediaExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

func (o *Orchestrator) acquire() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return false
	}
	o.running = true
	return true
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	o.running = false
	o.mu.Unlock()
}
