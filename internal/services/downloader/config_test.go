package downloader

import (
	"testing"

	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
)

func TestBuildConfig(t *testing.T) {
	testCases := []struct {
		name     string
		quality  models.Quality
		format   string
		template string
		audio    bool
	}{
		{"highest", models.QualityHighest, "best[ext=mp4]/best", "%(title)s.%(ext)s", false},
		{"1080p", models.Quality1080p, "best[height<=1080][ext=mp4]/best[height<=1080]", "%(title)s__1080p.%(ext)s", false},
		{"720p", models.Quality720p, "best[height<=720][ext=mp4]/best[height<=720]", "%(title)s__720p.%(ext)s", false},
		{"360p", models.Quality360p, "best[height<=360][ext=mp4]/best[height<=360]", "%(title)s__360p.%(ext)s", false},
		{"144p not in list", models.Quality("144p"), "best[height<=144][ext=mp4]/best[height<=144]", "%(title)s__144p.%(ext)s", false},
		{"audio", models.QualityAudioOnly, "bestaudio/best", "%(title)s.%(ext)s", true},
		{"unrecognised", models.Quality("4K"), "best[ext=mp4]/best", "%(title)s.%(ext)s", false},
		{"zero height", models.Quality("0p"), "best[ext=mp4]/best", "%(title)s.%(ext)s", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := BuildConfig(tc.quality, false)

			if cfg.FormatFilter != tc.format {
				t.Errorf("Expected format %q, got %q", tc.format, cfg.FormatFilter)
			}
			if cfg.OutputTemplate != tc.template {
				t.Errorf("Expected template %q, got %q", tc.template, cfg.OutputTemplate)
			}
			if cfg.WriteInfoJSON {
				t.Error("Expected info JSON sidecar to be disabled")
			}
			if tc.audio {
				if len(cfg.Postprocessors) != 1 {
					t.Fatalf("Expected one post-processor, got %d", len(cfg.Postprocessors))
				}
				pp := cfg.Postprocessors[0]
				if pp.Key != extractor.PostprocessorExtractAudio || pp.PreferredCodec != "mp3" || pp.PreferredQuality != "192" {
					t.Errorf("Unexpected post-processor: %+v", pp)
				}
			} else if len(cfg.Postprocessors) != 0 {
				t.Errorf("Expected no post-processors, got %+v", cfg.Postprocessors)
			}
		})
	}
}

func TestBuildConfigSubtitles(t *testing.T) {
	cfg := BuildConfig(models.Quality720p, true)
	if !cfg.WriteSubtitles || !cfg.WriteAutoSubtitles {
		t.Error("Expected manual and automatic subtitles to be requested")
	}
	if len(cfg.SubtitleLanguages) != 1 || cfg.SubtitleLanguages[0] != "en" {
		t.Errorf("Expected English subtitles, got %v", cfg.SubtitleLanguages)
	}

	audio := BuildConfig(models.QualityAudioOnly, true)
	if audio.WriteSubtitles || audio.WriteAutoSubtitles || len(audio.SubtitleLanguages) != 0 {
		t.Errorf("Expected subtitles to be ignored for audio downloads, got %+v", audio)
	}

	plain := BuildConfig(models.QualityHighest, false)
	if plain.WriteSubtitles || plain.WriteAutoSubtitles {
		t.Error("Expected no subtitles when not requested")
	}
}
