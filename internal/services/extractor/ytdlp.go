package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/denisAlshanov/vidgrab/internal/config"
	"github.com/denisAlshanov/vidgrab/internal/models"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

// reportedPathPrefix marks the line yt-dlp prints once the final file is in place.
const reportedPathPrefix = "vidgrab-output:"

type YTDLPEngine struct {
	executable    string
	progressEvery time.Duration
}

// NewYTDLPEngine creates an engine backed by the yt-dlp executable.
func NewYTDLPEngine(cfg *config.EngineConfig, progressEvery time.Duration) *YTDLPEngine {
	if progressEvery <= 0 {
		progressEvery = 500 * time.Millisecond
	}
	return &YTDLPEngine{
		executable:    cfg.ExecutablePath,
		progressEvery: progressEvery,
	}
}

// Available checks that the yt-dlp and ffmpeg executables can be found.
func (e *YTDLPEngine) Available() error {
	if _, err := exec.LookPath(e.executable); err != nil {
		return fmt.Errorf("yt-dlp not found: %w", err)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}
	return nil
}

func (e *YTDLPEngine) command() *ytdlp.Command {
	return ytdlp.New().
		SetExecutable(e.executable).
		NoPlaylist().
		NoWarnings()
}

// ExtractInfo runs yt-dlp in metadata-only mode.
func (e *YTDLPEngine) ExtractInfo(ctx context.Context, url string) (*RawInfo, error) {
	result, err := e.command().
		SkipDownload().
		DumpSingleJSON().
		Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", utils.ErrMetadataFetch, engineMessage(result, err))
	}

	info, err := ParseInfo([]byte(result.Stdout))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrMetadataFetch, err)
	}
	return info, nil
}

// Download runs yt-dlp with the options in cfg.
func (e *YTDLPEngine) Download(ctx context.Context, url string, cfg models.DownloadConfig, progress ProgressFunc) (string, error) {
	dl := e.command().
		Format(cfg.FormatFilter).
		Output(cfg.OutputTemplate).
		Print("after_move:" + reportedPathPrefix + "%(filepath)s").
		NoSimulate()

	if !cfg.WriteInfoJSON {
		dl.NoWriteInfoJSON()
	}
	if cfg.WriteSubtitles {
		dl.WriteSubs()
	}
	if cfg.WriteAutoSubtitles {
		dl.WriteAutoSubs()
	}
	if len(cfg.SubtitleLanguages) > 0 {
		dl.SubLangs(strings.Join(cfg.SubtitleLanguages, ","))
	}

	for _, pp := range cfg.Postprocessors {
		switch pp.Key {
		case PostprocessorExtractAudio:
			dl.ExtractAudio().
				AudioFormat(pp.PreferredCodec).
				AudioQuality(pp.PreferredQuality + "K")
		default:
			return "", fmt.Errorf("%w: unsupported post-processor %s", utils.ErrDownload, pp.Key)
		}
	}

	if progress != nil {
		dl.ProgressFunc(e.progressEvery, func(update ytdlp.ProgressUpdate) {
			progress(toProgress(&update))
		})
	}

	result, err := dl.Run(ctx, url)
	if err != nil {
		return "", fmt.Errorf("%w: %s", utils.ErrDownload, engineMessage(result, err))
	}

	return ParseReportedPath(result.Stdout), nil
}

// ParseInfo decodes the JSON record printed by yt-dlp. Lines before the
// record (stray warnings) are skipped.
func ParseInfo(output []byte) (*RawInfo, error) {
	output = bytes.TrimSpace(output)
	if len(output) == 0 {
		return nil, fmt.Errorf("empty metadata output")
	}

	if idx := bytes.IndexByte(output, '{'); idx > 0 {
		output = output[idx:]
	}

	var info RawInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse video info: %w", err)
	}
	return &info, nil
}

// ParseReportedPath returns the last output path yt-dlp printed, or "".
func ParseReportedPath(stdout string) string {
	var path string
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if rest, ok := strings.CutPrefix(line, reportedPathPrefix); ok && rest != "" && rest != "NA" {
			path = rest
		}
	}
	return path
}

func toProgress(update *ytdlp.ProgressUpdate) models.Progress {
	var elapsed time.Duration
	if !update.Started.IsZero() {
		elapsed = time.Since(update.Started)
	}

	p := buildProgress(
		string(update.Status),
		int64(update.DownloadedBytes),
		int64(update.TotalBytes),
		update.ETA(),
		elapsed,
	)
	if update.Filename != "" {
		p.FileName = filepath.Base(update.Filename)
	}
	return p
}

func buildProgress(status string, downloaded, total int64, eta, elapsed time.Duration) models.Progress {
	p := models.Progress{
		Status:          mapStatus(status),
		DownloadedBytes: downloaded,
		TotalBytes:      total,
		ETASeconds:      -1,
		UpdatedAt:       time.Now(),
	}

	if total > 0 {
		p.Percent = int(float64(downloaded) / float64(total) * 100)
		if p.Percent > 100 {
			p.Percent = 100
		}
	}

	if elapsed.Seconds() > 0 {
		bytesPerSecond := float64(downloaded) / elapsed.Seconds()
		p.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
	}

	if eta > 0 {
		p.ETASeconds = int(eta.Seconds())
	}

	return p
}

func mapStatus(status string) models.ProgressStatus {
	switch status {
	case "starting":
		return models.ProgressStatusStarting
	case "downloading":
		return models.ProgressStatusDownloading
	case "post_processing":
		return models.ProgressStatusPostProcessing
	case "finished":
		return models.ProgressStatusFinished
	case "error":
		return models.ProgressStatusError
	default:
		return models.ProgressStatusDownloading
	}
}

// engineMessage prefers the last line yt-dlp wrote to stderr, which carries
// the human readable reason ("ERROR: [youtube] ...: Video unavailable").
func engineMessage(result *ytdlp.Result, err error) string {
	if result != nil {
		stderr := strings.TrimSpace(result.Stderr)
		if stderr != "" {
			lines := strings.Split(stderr, "\n")
			return strings.TrimSpace(lines[len(lines)-1])
		}
	}
	return err.Error()
}
