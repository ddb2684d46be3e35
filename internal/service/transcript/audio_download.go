package transcript

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/common"
)

// AudioDownloader downloads the best-available audio for a video into a
// target directory and returns the path of the written file. The file may
// not be immediately readable after return; callers poll for readiness.
type AudioDownloader interface {
	Download(ctx context.Context, videoURL, videoID, outputDir string) (string, error)
}

// audioDownloader implements AudioDownloader using yt-dlp
type audioDownloader struct {
	cmdRunner common.CmdRunner
}

// NewAudioDownloader creates an AudioDownloader with the default CmdRunner
func NewAudioDownloader() AudioDownloader {
	return &audioDownloader{
		cmdRunner: common.NewCmdRunner(),
	}
}

// NewAudioDownloaderWithCmdRunner creates an AudioDownloader with a custom CmdRunner (for testing)
func NewAudioDownloaderWithCmdRunner(cmdRunner common.CmdRunner) AudioDownloader {
	return &audioDownloader{
		cmdRunner: cmdRunner,
	}
}

// Download extracts mp3 audio for a video using yt-dlp
func (d *audioDownloader) Download(ctx context.Context, videoURL, videoID, outputDir string) (string, error) {
	if videoURL == "" {
		return "", errors.New(errors.CodeInvalidArg, "video URL is required")
	}
	if outputDir == "" {
		return "", errors.New(errors.CodeInvalidArg, "output directory is required")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create output directory")
	}

	args := []string{
		"-x", // Extract audio only
		"--audio-format", "mp3",
		"--audio-quality", "0", // Best quality
		"--no-part",
		"--output", filepath.Join(outputDir, videoID+".%(ext)s"),
		videoURL,
	}

	if _, err := d.cmdRunner.Run(ctx, "yt-dlp", args...); err != nil {
		return "", errors.Wrap(err, errors.CodeExternal, formatYtDlpError(err, videoID))
	}

	// The output template pins the final filename
	return filepath.Join(outputDir, videoID+".mp3"), nil
}

// formatYtDlpError provides user-friendly error messages for yt-dlp failures
func formatYtDlpError(err error, videoID string) string {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "Video unavailable"):
		return "video is not available (may be private, deleted, or region-blocked)"
	case strings.Contains(errMsg, "Private video"):
		return "video is private and cannot be downloaded"
	case strings.Contains(errMsg, "No such file or directory") && strings.Contains(errMsg, "yt-dlp"):
		return "yt-dlp is not installed or not found in PATH. Please install yt-dlp"
	case strings.Contains(errMsg, "HTTP Error 404"):
		return "video not found - please check the video ID"
	case strings.Contains(errMsg, "403"):
		return "access denied - video may be region-blocked or require login"
	case strings.Contains(errMsg, "429"):
		return "rate limited by YouTube - please try again later"
	default:
		return fmt.Sprintf("failed to download audio for video '%s' - %s", videoID, errMsg)
	}
}
