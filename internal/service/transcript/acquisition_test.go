package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockCaptionsService for testing
type mockCaptionsService struct {
	mock.Mock
}

func (m *mockCaptionsService) Fetch(ctx context.Context, videoID string) ([]model.CaptionItem, error) {
	args := m.Called(ctx, videoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaptionItem), args.Error(1)
}

// mockDownloader for testing. writeContent controls what lands on disk.
type mockDownloader struct {
	mock.Mock
	writeContent []byte
}

func (m *mockDownloader) Download(ctx context.Context, videoURL, videoID, outputDir string) (string, error) {
	args := m.Called(ctx, videoURL, videoID, outputDir)
	path := filepath.Join(outputDir, videoID+".mp3")
	if args.Error(0) == nil {
		if err := os.WriteFile(path, m.writeContent, 0644); err != nil {
			return "", err
		}
	}
	return path, args.Error(0)
}

// mockSpeechToText for testing
type mockSpeechToText struct {
	mock.Mock
}

func (m *mockSpeechToText) Transcribe(ctx context.Context, audioPath string) (string, error) {
	args := m.Called(ctx, audioPath)
	return args.String(0), args.Error(1)
}

func fastOptions(tempRoot string) Options {
	return Options{
		TempRoot:      tempRoot,
		PollChecks:    10,
		PollInterval:  time.Millisecond,
		UploadRetries: 5,
		RetryDelay:    time.Millisecond,
	}
}

func testRef() *model.VideoReference {
	return &model.VideoReference{
		SourceURL: "https://www.youtube.com/watch?v=abc12345678",
		VideoID:   "abc12345678",
	}
}

func TestAcquire_CaptionsPath(t *testing.T) {
	items := []model.CaptionItem{
		{Start: 0, Duration: 2, Text: "hello"},
		{Start: 2, Duration: 3, Text: "world"},
	}

	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, "abc12345678").Return(items, nil)
	downloader := new(mockDownloader)
	speech := new(mockSpeechToText)

	svc := NewServiceWithOptions(captionsSvc, downloader, speech, fastOptions(t.TempDir()))
	source, err := svc.Acquire(context.Background(), testRef())
	require.NoError(t, err)

	assert.Equal(t, model.SourceCaptions, source.Kind)
	assert.Equal(t, items, source.Items)
	assert.Equal(t, "hello world", source.PlainText())
	// the fallback path must not run when captions succeed
	downloader.AssertNotCalled(t, "Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAcquire_AudioFallback(t *testing.T) {
	tempRoot := t.TempDir()

	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	downloader := &mockDownloader{writeContent: []byte("mp3 bytes")}
	downloader.On("Download", mock.Anything, mock.Anything, "abc12345678", mock.Anything).Return(nil)

	speech := new(mockSpeechToText)
	speech.On("Transcribe", mock.Anything, mock.MatchedBy(func(path string) bool {
		// the oracle sees the isolated copy, never the download location
		return filepath.Base(path) == "abc12345678_processed.mp3"
	})).Return("transcribed text", nil)

	svc := NewServiceWithOptions(captionsSvc, downloader, speech, fastOptions(tempRoot))
	source, err := svc.Acquire(context.Background(), testRef())
	require.NoError(t, err)

	assert.Equal(t, model.SourceAudio, source.Kind)
	assert.Equal(t, "transcribed text", source.Text)
	assert.False(t, source.HasTimestamps())

	assertWorkingAreasRemoved(t, tempRoot)
}

func TestAcquire_EmptyDownloadExhaustsPolling(t *testing.T) {
	tempRoot := t.TempDir()

	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	// file is written but stays empty through all poll checks
	downloader := &mockDownloader{writeContent: nil}
	downloader.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	speech := new(mockSpeechToText)

	svc := NewServiceWithOptions(captionsSvc, downloader, speech, fastOptions(tempRoot))
	_, err := svc.Acquire(context.Background(), testRef())

	require.Error(t, err)
	assert.Equal(t, errors.CodeAcquisitionFailed, errors.Code(err))
	speech.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)

	assertWorkingAreasRemoved(t, tempRoot)
}

func TestAcquire_DownloadFailure(t *testing.T) {
	tempRoot := t.TempDir()

	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	downloader := new(mockDownloader)
	downloader.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

	svc := NewServiceWithOptions(captionsSvc, downloader, new(mockSpeechToText), fastOptions(tempRoot))
	_, err := svc.Acquire(context.Background(), testRef())

	require.Error(t, err)
	assert.Equal(t, errors.CodeAcquisitionFailed, errors.Code(err))
	assertWorkingAreasRemoved(t, tempRoot)
}

func TestAcquire_TranscribeRetriesThenSucceeds(t *testing.T) {
	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	downloader := &mockDownloader{writeContent: []byte("mp3 bytes")}
	downloader.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	speech := new(mockSpeechToText)
	speech.On("Transcribe", mock.Anything, mock.Anything).Return("", assert.AnError).Twice()
	speech.On("Transcribe", mock.Anything, mock.Anything).Return("recovered text", nil).Once()

	svc := NewServiceWithOptions(captionsSvc, downloader, speech, fastOptions(t.TempDir()))
	source, err := svc.Acquire(context.Background(), testRef())
	require.NoError(t, err)

	assert.Equal(t, "recovered text", source.Text)
	speech.AssertNumberOfCalls(t, "Transcribe", 3)
}

func TestAcquire_TranscribeRetriesExhausted(t *testing.T) {
	tempRoot := t.TempDir()

	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	downloader := &mockDownloader{writeContent: []byte("mp3 bytes")}
	downloader.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	speech := new(mockSpeechToText)
	speech.On("Transcribe", mock.Anything, mock.Anything).Return("", assert.AnError)

	svc := NewServiceWithOptions(captionsSvc, downloader, speech, fastOptions(tempRoot))
	_, err := svc.Acquire(context.Background(), testRef())

	require.Error(t, err)
	assert.Equal(t, errors.CodeAcquisitionFailed, errors.Code(err))
	speech.AssertNumberOfCalls(t, "Transcribe", 5)
	assertWorkingAreasRemoved(t, tempRoot)
}

func TestAcquire_EmptyTranscriptionFails(t *testing.T) {
	captionsSvc := new(mockCaptionsService)
	captionsSvc.On("Fetch", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	downloader := &mockDownloader{writeContent: []byte("mp3 bytes")}
	downloader.On("Download", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	speech := new(mockSpeechToText)
	speech.On("Transcribe", mock.Anything, mock.Anything).Return("", nil)

	svc := NewServiceWithOptions(captionsSvc, downloader, speech, fastOptions(t.TempDir()))
	_, err := svc.Acquire(context.Background(), testRef())

	require.Error(t, err)
	assert.Equal(t, errors.CodeAcquisitionFailed, errors.Code(err))
}

// assertWorkingAreasRemoved verifies both transient directories were
// cleaned up regardless of outcome
func assertWorkingAreasRemoved(t *testing.T, tempRoot string) {
	t.Helper()
	entries, err := os.ReadDir(tempRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "working directories should be removed")
}
