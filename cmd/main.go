// Package main provides the entry point for the vidgrab video downloader service.
// @title vidgrab API
// @version 1.0
// @description Browser front end for downloading online videos and audio through yt-dlp.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/denisAlshanov/vidgrab/docs" // Import for swagger docs
	"github.com/denisAlshanov/vidgrab/internal/api/handlers"
	"github.com/denisAlshanov/vidgrab/internal/api/router"
	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/services/auth"
	"github.com/denisAlshanov/vidgrab/internal/services/downloader"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
	"github.com/denisAlshanov/vidgrab/internal/services/metadata"
	"github.com/denisAlshanov/vidgrab/internal/services/session"
	"github.com/denisAlshanov/vidgrab/internal/services/storage"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting vidgrab service")

	engine := extractor.NewYTDLPEngine(&cfg.Engine, cfg.Download.ProgressEvery)
	if err := engine.Available(); err != nil {
		logger.Warnf("Extraction engine unavailable, requests will fail until it is installed: %v", err)
	}

	// Archive storage is optional
	s3Storage, err := storage.NewStorage(&cfg.S3)
	if err != nil {
		logger.Fatalf("Failed to initialize storage: %v", err)
	}
	var archiver *storage.Archiver
	if s3Storage != nil {
		archiver = storage.NewArchiver(s3Storage, cfg.S3.URLExpiry)
	}

	secret := cfg.Session.Secret
	if secret == "" {
		secret, err = utils.GenerateSecret(32)
		if err != nil {
			logger.Fatalf("Failed to generate session secret: %v", err)
		}
		logger.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}
	tokens := auth.NewTokenService(auth.TokenConfig{
		SecretKey: secret,
		Duration:  cfg.Session.TTL,
	})

	store := session.NewStore(cfg.Session.TTL, func() (*downloader.Orchestrator, error) {
		return downloader.NewOrchestrator(engine, cfg.Download.WorkDir, cfg.Download.DownloadTimeout)
	})

	fetcher := metadata.NewFetcher(engine, cfg.Engine.InfoTimeout)

	r := router.NewRouter(cfg, store, tokens, router.Handlers{
		UI:      handlers.NewUIHandler(),
		Options: handlers.NewOptionsHandler(),
		Video:   handlers.NewVideoHandler(fetcher, archiver, 15*time.Second),
		Session: handlers.NewSessionHandler(),
		Health:  handlers.NewHealthHandler(engine, archiver, store),
	})
	srv := r.Server()

	go func() {
		logger.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Failed to shut down server: %v", err)
	}

	// Removes every session work directory
	store.Close()

	logger.Info("Server shutdown complete")
}
