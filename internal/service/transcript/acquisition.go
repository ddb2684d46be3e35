package transcript

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/ai"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/captions"
)

// Service defines transcript acquisition for a video
type Service interface {
	// Acquire returns the transcript for a video: captions when available,
	// otherwise audio download plus speech-to-text. Fails with
	// ACQUISITION_FAILED only when both paths are exhausted.
	Acquire(ctx context.Context, ref *model.VideoReference) (*model.TranscriptSource, error)
}

// Options tune the audio-fallback retry behavior. Zero values select the
// production defaults; tests shrink the delays.
type Options struct {
	TempRoot      string        // base directory for working storage
	PollChecks    int           // file-readiness checks after download
	PollInterval  time.Duration // delay between readiness checks
	UploadRetries int           // transcription attempts
	RetryDelay    time.Duration // delay between transcription attempts
}

const (
	defaultPollChecks    = 10
	defaultPollInterval  = 2 * time.Second
	defaultUploadRetries = 5
	defaultRetryDelay    = 3 * time.Second
)

// service implements Service with a captions-first, audio-fallback strategy
type service struct {
	captions   captions.Service
	downloader AudioDownloader
	speech     ai.SpeechToText
	opts       Options
}

// NewService creates an acquisition Service with production defaults
func NewService(captionsSvc captions.Service, downloader AudioDownloader, speech ai.SpeechToText) Service {
	return NewServiceWithOptions(captionsSvc, downloader, speech, Options{})
}

// NewServiceWithOptions creates an acquisition Service with custom retry
// tuning (for testing)
func NewServiceWithOptions(captionsSvc captions.Service, downloader AudioDownloader, speech ai.SpeechToText, opts Options) Service {
	if opts.TempRoot == "" {
		opts.TempRoot = os.TempDir()
	}
	if opts.PollChecks <= 0 {
		opts.PollChecks = defaultPollChecks
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.UploadRetries <= 0 {
		opts.UploadRetries = defaultUploadRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = defaultRetryDelay
	}
	return &service{
		captions:   captionsSvc,
		downloader: downloader,
		speech:     speech,
		opts:       opts,
	}
}

// Acquire tries the captions path first. Any captions failure, regardless
// of reason, triggers the audio fallback unconditionally.
func (s *service) Acquire(ctx context.Context, ref *model.VideoReference) (*model.TranscriptSource, error) {
	items, captionsErr := s.captions.Fetch(ctx, ref.VideoID)
	if captionsErr == nil {
		return &model.TranscriptSource{
			Kind:  model.SourceCaptions,
			Items: items,
		}, nil
	}

	text, audioErr := s.transcribeFromAudio(ctx, ref)
	if audioErr != nil {
		return nil, errors.Wrap(audioErr, errors.CodeAcquisitionFailed,
			fmt.Sprintf("captions unavailable (%v) and audio fallback failed", captionsErr))
	}

	return &model.TranscriptSource{
		Kind: model.SourceAudio,
		Text: text,
	}, nil
}

// transcribeFromAudio downloads the video audio to a transient working
// area, waits for the file to become readable, copies it to an isolated
// location and runs speech-to-text over the copy. Both working areas are
// removed on every exit path; cleanup failures are swallowed.
func (s *service) transcribeFromAudio(ctx context.Context, ref *model.VideoReference) (string, error) {
	downloadDir, err := os.MkdirTemp(s.opts.TempRoot, "transcriptgen-download-*")
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create download directory")
	}
	defer os.RemoveAll(downloadDir)

	audioPath, err := s.downloader.Download(ctx, ref.SourceURL, ref.VideoID, downloadDir)
	if err != nil {
		return "", err
	}

	// The downloaded file is not trustworthy immediately after yt-dlp
	// returns; the platform may still hold the file handle
	if err := s.waitForFile(ctx, audioPath); err != nil {
		return "", err
	}

	// Copy to a fresh isolated location to avoid lock contention with the
	// download directory
	copyDir, err := os.MkdirTemp(s.opts.TempRoot, "transcriptgen-audio-*")
	if err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to create isolation directory")
	}
	defer os.RemoveAll(copyDir)

	copiedPath := filepath.Join(copyDir, ref.VideoID+"_processed.mp3")
	if err := copyFile(audioPath, copiedPath); err != nil {
		return "", errors.Wrap(err, errors.CodeInternal, "failed to copy audio file")
	}

	text, err := s.transcribeWithRetry(ctx, copiedPath)
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New(errors.CodeExternal, "audio transcription produced no output")
	}
	return text, nil
}

// waitForFile polls until the file exists and is non-empty, up to the
// configured number of checks
func (s *service) waitForFile(ctx context.Context, path string) error {
	for check := 0; check < s.opts.PollChecks; check++ {
		info, err := os.Stat(path)
		if err == nil && info.Size() > 0 {
			return nil
		}
		if check == s.opts.PollChecks-1 {
			break
		}
		if err := sleep(ctx, s.opts.PollInterval); err != nil {
			return err
		}
	}
	return errors.New(errors.CodeExternal,
		fmt.Sprintf("audio file not readable after %d checks", s.opts.PollChecks))
}

// transcribeWithRetry calls the speech-to-text oracle up to the configured
// number of attempts, re-raising the final error when all are exhausted
func (s *service) transcribeWithRetry(ctx context.Context, audioPath string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < s.opts.UploadRetries; attempt++ {
		text, err := s.speech.Transcribe(ctx, audioPath)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if attempt < s.opts.UploadRetries-1 {
			if err := sleep(ctx, s.opts.RetryDelay); err != nil {
				return "", err
			}
		}
	}
	return "", lastErr
}

// sleep waits for the given duration, honoring context cancellation
func sleep(ctx context.Context, d time.Duration) error {
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// copyFile copies src to dst and verifies the copy is non-empty
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	written, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return err
	}
	if written == 0 {
		out.Close()
		return fmt.Errorf("copied file is empty: %s", dst)
	}
	return out.Close()
}
