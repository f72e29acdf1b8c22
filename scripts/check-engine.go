package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
	"github.com/denisAlshanov/vidgrab/internal/services/metadata"
)

func main() {
	fmt.Println("Extraction Engine Check")
	fmt.Println("=======================")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Printf("yt-dlp: %s\n", cfg.Engine.ExecutablePath)
	fmt.Printf("Info timeout: %s\n", cfg.Engine.InfoTimeout)
	fmt.Println()

	engine := extractor.NewYTDLPEngine(&cfg.Engine, cfg.Download.ProgressEvery)
	if err := engine.Available(); err != nil {
		log.Fatalf("Engine not available: %v", err)
	}
	fmt.Println("✓ yt-dlp and ffmpeg found")

	if len(os.Args) < 2 {
		fmt.Println("Pass a video URL to test metadata extraction")
		return
	}

	fetcher := metadata.NewFetcher(engine, cfg.Engine.InfoTimeout)
	summary, err := fetcher.Fetch(context.Background(), os.Args[1])
	if err != nil {
		log.Fatalf("Metadata fetch failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println("✓ Metadata fetched")
	fmt.Println(string(out))
}
