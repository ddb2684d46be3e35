package pipeline

import (
	"context"
	"strings"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/artifact"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/subscription"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/ai"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/catalog"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/service/transcript"
)

// Resolver turns a raw URL into a validated video reference
type Resolver func(rawURL string) (*model.VideoReference, error)

// freeTierLimit is the number of artifacts a non-entitled user may create
const freeTierLimit = 2

// Service runs the full transcript enrichment pipeline
type Service interface {
	// Run executes the pipeline for one video URL on behalf of a user:
	// quota gate, ID resolution, transcript acquisition, catalog metadata,
	// chunked enrichment, reduction, global enrichment and a single atomic
	// persist. Any stage failure aborts the run; nothing is written before
	// the final persist.
	Run(ctx context.Context, userID int64, rawURL string, visibility model.Visibility) (*model.Artifact, error)
}

// Mapper produces per-chunk partial enrichment results
type Mapper interface {
	ProcessChunks(ctx context.Context, chunks []model.Chunk) ([]model.PartialResult, error)
}

// Reducer combines partial results into a single enrichment result
type Reducer interface {
	Combine(ctx context.Context, partials []model.PartialResult, source *model.TranscriptSource) (*ai.CombinedResult, error)
}

// GlobalEnricher runs whole-transcript enrichment
type GlobalEnricher interface {
	Enrich(ctx context.Context, transcript string) (*ai.GlobalResult, error)
}

// service implements Service as a linear state machine over its collaborators
type service struct {
	resolver      Resolver
	acquisition   transcript.Service
	catalog       catalog.Service
	mapper        Mapper
	reducer       Reducer
	global        GlobalEnricher
	artifacts     artifact.Repository
	subscriptions subscription.Repository
	chunkSize     int
}

// NewService creates a pipeline Service
func NewService(
	resolverFn Resolver,
	acquisitionSvc transcript.Service,
	catalogSvc catalog.Service,
	mapper Mapper,
	reducer Reducer,
	global GlobalEnricher,
	artifacts artifact.Repository,
	subscriptions subscription.Repository,
	chunkSize int,
) Service {
	return &service{
		resolver:      resolverFn,
		acquisition:   acquisitionSvc,
		catalog:       catalogSvc,
		mapper:        mapper,
		reducer:       reducer,
		global:        global,
		artifacts:     artifacts,
		subscriptions: subscriptions,
		chunkSize:     chunkSize,
	}
}

// Run executes one pipeline pass
func (s *service) Run(ctx context.Context, userID int64, rawURL string, visibility model.Visibility) (*model.Artifact, error) {
	if err := s.checkQuota(ctx, userID); err != nil {
		return nil, err
	}

	ref, err := s.resolver(rawURL)
	if err != nil {
		return nil, err
	}

	source, err := s.acquisition.Acquire(ctx, ref)
	if err != nil {
		return nil, err
	}

	metadata, err := s.catalog.Get(ctx, ref.VideoID)
	if err != nil {
		return nil, err
	}

	text := source.PlainText()
	chunks := ai.SplitIntoChunks(text, s.chunkSize)
	if len(chunks) == 0 {
		return nil, errors.New(errors.CodeAcquisitionFailed, "transcript contains no words")
	}

	partials, err := s.mapper.ProcessChunks(ctx, chunks)
	if err != nil {
		return nil, err
	}

	combined, err := s.reducer.Combine(ctx, partials, source)
	if err != nil {
		return nil, err
	}

	global, err := s.global.Enrich(ctx, text)
	if err != nil {
		return nil, err
	}

	if visibility == "" {
		visibility = model.VisibilityPrivate
	}

	result := &model.Artifact{
		UserID:       userID,
		YoutubeURL:   ref.SourceURL,
		VideoID:      ref.VideoID,
		Title:        metadata.Title,
		ChannelName:  metadata.ChannelName,
		ThumbnailURL: metadata.ThumbnailURL,
		Duration:     metadata.Duration,
		PublishDate:  metadata.PublishDate,
		Transcript:   strings.TrimSpace(text),
		Summary:      combined.Summary,
		Highlights:   combined.Highlights,
		KeyMoments:   combined.KeyMoments,
		Topics:       global.Topics,
		Quotes:       global.Quotes,
		Sentiment:    global.Sentiment,
		HostName:     global.HostName,
		GuestName:    global.GuestName,
		Visibility:   visibility,
	}

	if err := s.artifacts.Create(ctx, result); err != nil {
		return nil, err
	}

	return result, nil
}

// checkQuota rejects non-entitled users who already hold the free-tier
// number of artifacts. Entitled users are never limited.
func (s *service) checkQuota(ctx context.Context, userID int64) error {
	entitled, err := s.subscriptions.IsEntitled(ctx, userID)
	if err != nil {
		return err
	}
	if entitled {
		return nil
	}

	count, err := s.artifacts.CountByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count >= freeTierLimit {
		return errors.New(errors.CodeQuotaExceeded, "free-tier artifact limit reached; subscribe to continue")
	}
	return nil
}
