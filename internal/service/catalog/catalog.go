package catalog

import (
	"context"
	"time"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Service defines video-catalog lookups
type Service interface {
	// Get fetches title, channel, thumbnail, ISO-8601 duration and publish
	// date for a video. Fails with VIDEO_NOT_FOUND when the catalog has no
	// matching item.
	Get(ctx context.Context, videoID string) (*model.VideoMetadata, error)
}

// listFunc abstracts the Videos.List call for testing
type listFunc func(ctx context.Context, videoID string) (*youtube.VideoListResponse, error)

// service implements Service over the YouTube Data API v3
type service struct {
	list listFunc
}

// NewService creates a catalog Service authenticated with an API key
func NewService(ctx context.Context, apiKey string) (Service, error) {
	if apiKey == "" {
		return nil, errors.New(errors.CodeInvalidArg, "YouTube API key is required")
	}

	yt, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to create YouTube service")
	}

	return &service{
		list: func(ctx context.Context, videoID string) (*youtube.VideoListResponse, error) {
			return yt.Videos.List([]string{"snippet", "contentDetails"}).Id(videoID).Context(ctx).Do()
		},
	}, nil
}

// NewServiceWithLister creates a catalog Service with a custom list call (for testing)
func NewServiceWithLister(list listFunc) Service {
	return &service{list: list}
}

// Get fetches catalog metadata for a video
func (s *service) Get(ctx context.Context, videoID string) (*model.VideoMetadata, error) {
	resp, err := s.list(ctx, videoID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "catalog lookup failed")
	}
	if len(resp.Items) == 0 {
		return nil, errors.New(errors.CodeVideoNotFound, "video not found")
	}

	item := resp.Items[0]
	metadata := &model.VideoMetadata{
		Title:       item.Snippet.Title,
		ChannelName: item.Snippet.ChannelTitle,
	}

	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Default != nil {
		metadata.ThumbnailURL = item.Snippet.Thumbnails.Default.Url
	}
	if item.ContentDetails != nil {
		// ISO 8601 duration, stored verbatim
		metadata.Duration = item.ContentDetails.Duration
	}

	publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeExternal, "failed to parse publish timestamp")
	}
	// Calendar date only, UTC
	publishedAt = publishedAt.UTC()
	metadata.PublishDate = time.Date(
		publishedAt.Year(), publishedAt.Month(), publishedAt.Day(),
		0, 0, 0, 0, time.UTC)

	return metadata, nil
}
