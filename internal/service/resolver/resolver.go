package resolver

import (
	"regexp"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Ordered URL matchers. The first capture group is the 11-character video
// ID. Protocol and www prefix are optional, host matching is
// case-insensitive, trailing query parameters are tolerated.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtube\.com/watch\?(?:[^#]*&)?v=([a-zA-Z0-9_-]{11})`),
	regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?youtu\.be/([a-zA-Z0-9_-]{11})`),
}

// Resolve extracts the canonical video ID from a YouTube URL. It must be
// called before any acquisition work so malformed requests are rejected
// cheaply.
func Resolve(rawURL string) (*model.VideoReference, error) {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(rawURL); m != nil {
			return &model.VideoReference{
				SourceURL: rawURL,
				VideoID:   m[1],
			}, nil
		}
	}
	return nil, errors.New(errors.CodeInvalidURL, "no recognized YouTube URL shape")
}
