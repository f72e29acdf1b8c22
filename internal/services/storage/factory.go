package storage

import (
	"fmt"

	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

// NewStorage creates S3 storage. It returns nil when archiving is disabled.
func NewStorage(cfg *config.S3Config) (StorageInterface, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	utils.GetLogger().WithFields(utils.Fields{
		"bucket":   cfg.BucketName,
		"endpoint": cfg.EndpointURL,
	}).Info("Creating S3 archive storage")

	storage, err := NewS3Storage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 storage: %w", err)
	}

	return storage, nil
}
