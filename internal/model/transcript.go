package model

import (
	"strings"
	"time"
)

// VideoReference ties a source URL to the canonical 11-character video ID
// extracted from it
type VideoReference struct {
	SourceURL string `json:"source_url"`
	VideoID   string `json:"video_id"`
}

// CaptionItem is one timed caption segment from the captions service
type CaptionItem struct {
	Start    float64 `json:"start"`    // Start offset in seconds
	Duration float64 `json:"duration"` // Segment duration in seconds
	Text     string  `json:"text"`
}

// SourceKind identifies which acquisition path produced a transcript
type SourceKind string

const (
	SourceCaptions SourceKind = "captions" // captions service, per-segment timing
	SourceAudio    SourceKind = "audio"    // audio download + speech-to-text, no timing
)

// TranscriptSource is the result of transcript acquisition. Exactly one
// variant is populated: Items for SourceCaptions, Text for SourceAudio.
type TranscriptSource struct {
	Kind  SourceKind    `json:"kind"`
	Items []CaptionItem `json:"items,omitempty"`
	Text  string        `json:"text,omitempty"`
}

// PlainText returns the flattened transcript text: space-joined segment
// texts for captions, the raw oracle text for audio.
func (s *TranscriptSource) PlainText() string {
	if s.Kind == SourceAudio {
		return s.Text
	}
	parts := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		parts = append(parts, item.Text)
	}
	return strings.Join(parts, " ")
}

// TotalDuration returns the video duration in seconds derived from the last
// caption segment. Zero for audio transcriptions, which carry no timing.
func (s *TranscriptSource) TotalDuration() float64 {
	if len(s.Items) == 0 {
		return 0
	}
	last := s.Items[len(s.Items)-1]
	return last.Start + last.Duration
}

// HasTimestamps reports whether per-segment timing is available
func (s *TranscriptSource) HasTimestamps() bool {
	return s.Kind == SourceCaptions && len(s.Items) > 0
}

// Chunk is a fixed-size word window over the flattened transcript text
type Chunk struct {
	Index int    `json:"index"` // zero-based position
	Total int    `json:"total"` // total number of chunks
	Text  string `json:"text"`
}

// KeyMoment is one notable moment with an approximate timestamp label.
// The label is empty until the reduce stage assigns chunk-level offsets,
// and stays empty for audio transcriptions.
type KeyMoment struct {
	Timestamp string `json:"timestamp"`
	Moment    string `json:"moment"`
}

// PartialResult holds the per-chunk outputs of the enrichment map stage
type PartialResult struct {
	ChunkIndex int         `json:"chunk_index"`
	Summary    string      `json:"summary"`
	Highlights []string    `json:"highlights"`
	KeyMoments []KeyMoment `json:"key_moments"`
}

// Sentiment classification of the full transcript
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Visibility controls whether an artifact appears in the public feed
type Visibility string

const (
	VisibilityPrivate Visibility = "PRIVATE"
	VisibilityPublic  Visibility = "PUBLIC"
)

// VideoMetadata is catalog information fetched independently of the
// transcript content
type VideoMetadata struct {
	Title        string    `json:"title" db:"title"`
	ChannelName  string    `json:"channel_name" db:"channel_name"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	Duration     string    `json:"duration" db:"duration"` // ISO 8601, stored verbatim
	PublishDate  time.Time `json:"publish_date" db:"publish_date"`
}

// Artifact is the final enriched entity persisted at the end of a
// successful pipeline run. Immutable after creation except for visibility
// and the externally-owned social counts.
type Artifact struct {
	ID           int64       `json:"id" db:"id"`
	UserID       int64       `json:"user_id" db:"user_id"`
	YoutubeURL   string      `json:"youtube_url" db:"youtube_url"`
	VideoID      string      `json:"video_id" db:"video_id"`
	Title        string      `json:"title" db:"title"`
	ChannelName  string      `json:"channel_name" db:"channel_name"`
	ThumbnailURL string      `json:"thumbnail_url" db:"thumbnail_url"`
	Duration     string      `json:"duration" db:"duration"`
	PublishDate  time.Time   `json:"publish_date" db:"publish_date"`
	Transcript   string      `json:"transcript" db:"transcript"`
	Summary      string      `json:"summary" db:"summary"`
	Highlights   []string    `json:"highlights" db:"highlights"`
	KeyMoments   []KeyMoment `json:"key_moments" db:"key_moments"`
	Topics       []string    `json:"topics" db:"topics"`
	Quotes       []string    `json:"quotes" db:"quotes"`
	Sentiment    Sentiment   `json:"sentiment" db:"sentiment"`
	HostName     *string     `json:"host_name" db:"host_name"`
	GuestName    *string     `json:"guest_name" db:"guest_name"`
	Visibility   Visibility  `json:"visibility" db:"visibility"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	// Social engagement counts, aggregated on public reads
	LikeCount     int `json:"like_count" db:"like_count"`
	CommentCount  int `json:"comment_count" db:"comment_count"`
	FavoriteCount int `json:"favorite_count" db:"favorite_count"`
}

// Comment on a public artifact
type Comment struct {
	ID         int64     `json:"id" db:"id"`
	ArtifactID int64     `json:"artifact_id" db:"artifact_id"`
	UserID     int64     `json:"user_id" db:"user_id"`
	Content    string    `json:"content" db:"content"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
