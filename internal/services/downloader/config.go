package downloader

import (
	"fmt"

	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/services/extractor"
)

const (
	FormatBestMP4   = "best[ext=mp4]/best"
	FormatBestAudio = "bestaudio/best"

	DefaultTemplate = "%(title)s.%(ext)s"

	AudioCodec   = "mp3"
	AudioBitrate = "192"

	SubtitleLanguage = "en"
)

// BuildConfig derives the engine options for one download. Rules are checked
// in order and the first match wins: highest quality, audio only, "Np"
// height caps, then the highest-quality fallback for anything else.
func BuildConfig(quality models.Quality, includeSubtitles bool) models.DownloadConfig {
	cfg := models.DownloadConfig{
		FormatFilter:   FormatBestMP4,
		OutputTemplate: DefaultTemplate,
	}

	switch {
	case quality == models.QualityHighest:
		// defaults
	case quality.IsAudioOnly():
		cfg.FormatFilter = FormatBestAudio
		cfg.Postprocessors = []models.Postprocessor{{
			Key:              extractor.PostprocessorExtractAudio,
			PreferredCodec:   AudioCodec,
			PreferredQuality: AudioBitrate,
		}}
	default:
		if height, ok := quality.Height(); ok {
			cfg.FormatFilter = fmt.Sprintf("best[height<=%d][ext=mp4]/best[height<=%d]", height, height)
			cfg.OutputTemplate = fmt.Sprintf("%%(title)s__%s.%%(ext)s", quality)
		}
	}

	if includeSubtitles && !quality.IsAudioOnly() {
		cfg.WriteSubtitles = true
		cfg.WriteAutoSubtitles = true
		cfg.SubtitleLanguages = []string{SubtitleLanguage}
	}

	return cfg
}
