package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

const archivePrefix = "downloads"

// Archiver copies finished downloads to object storage.
type Archiver struct {
	storage StorageInterface
	expiry  time.Duration
}

func NewArchiver(storage StorageInterface, expiry time.Duration) *Archiver {
	return &Archiver{
		storage: storage,
		expiry:  expiry,
	}
}

// ArchiveKey returns the object key of fileName for a session.
func ArchiveKey(sessionID, fileName string) string {
	return path.Join(archivePrefix, sessionID, fileName)
}

// Archive uploads file and returns a presigned URL for it.
func (a *Archiver) Archive(ctx context.Context, sessionID string, file *models.DownloadedFile, summary *models.VideoSummary) (string, error) {
	key := ArchiveKey(sessionID, file.FileName)

	exists, err := a.storage.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := a.upload(ctx, key, file, summary); err != nil {
			return "", err
		}
	}

	return a.storage.GeneratePresignedURL(ctx, key, a.expiry)
}

func (a *Archiver) upload(ctx context.Context, key string, file *models.DownloadedFile, summary *models.VideoSummary) error {
	f, err := os.Open(file.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file.FileName, err)
	}
	defer f.Close()

	contentType := "application/octet-stream"
	if mtype, err := mimetype.DetectFile(file.Path); err == nil {
		contentType = mtype.String()
	}

	// S3 metadata travels in headers and must stay ASCII
	metadata := map[string]string{
		"quality":    url.QueryEscape(file.Quality.String()),
		"source-url": url.QueryEscape(file.SourceURL),
	}
	if summary != nil {
		metadata["title"] = url.QueryEscape(summary.Title)
	}

	if err := a.storage.Upload(ctx, key, f, file.SizeBytes, contentType, metadata); err != nil {
		return err
	}

	utils.LogInfo(ctx, "Archived download", utils.Fields{
		"bucket":       a.storage.BucketName(),
		"key":          key,
		"content_type": contentType,
		"size_bytes":   file.SizeBytes,
	})

	return nil
}

// Ready reports whether the archive bucket is reachable.
func (a *Archiver) Ready(ctx context.Context) error {
	return a.storage.Ping(ctx)
}
