// Package extractortest provides an in-memory extraction engine for tests.
package extractortest

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
)

// FakeEngine records calls and writes the configured files into the
// directory of the output template instead of running yt-dlp.
type FakeEngine struct {
	mu sync.Mutex

	Info        *extractor.RawInfo
	InfoErr     error
	DownloadErr error

	// Files are created next to the output template, in order.
	Files   []string
	Content []byte
	// ReportPath makes Download return the last created file.
	ReportPath bool
	Progress   []models.Progress

	// Block, when set, holds Download until it is closed or ctx ends.
	Block chan struct{}

	InfoCalls     int
	DownloadCalls int
	LastURL       string
	LastConfig    models.DownloadConfig
}

func (f *FakeEngine) ExtractInfo(ctx context.Context, url string) (*extractor.RawInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.InfoCalls++
	f.LastURL = url
	if f.InfoErr != nil {
		return nil, f.InfoErr
	}
	if f.Info == nil {
		return &extractor.RawInfo{}, nil
	}
	return f.Info, nil
}

func (f *FakeEngine) Download(ctx context.Context, url string, cfg models.DownloadConfig, progress extractor.ProgressFunc) (string, error) {
	f.mu.Lock()
	f.DownloadCalls++
	f.LastURL = url
	f.LastConfig = cfg
	block := f.Block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if progress != nil {
		for _, p := range f.Progress {
			progress(p)
		}
	}

	if f.DownloadErr != nil {
		return "", f.DownloadErr
	}

	content := f.Content
	if content == nil {
		content = []byte("media")
	}

	dir := filepath.Dir(cfg.OutputTemplate)
	var last string
	for _, name := range f.Files {
		last = filepath.Join(dir, name)
		if err := os.WriteFile(last, content, 0o644); err != nil {
			return "", err
		}
	}

	if f.ReportPath {
		return last, nil
	}
	return "", nil
}

// Calls returns the number of ExtractInfo and Download invocations.
func (f *FakeEngine) Calls() (info, download int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.InfoCalls, f.DownloadCalls
}
