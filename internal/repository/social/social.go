package social

import (
	"context"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Repository defines social engagement operations on public artifacts
type Repository interface {
	// Like records a like; liking the same artifact twice is a no-op
	Like(ctx context.Context, artifactID, userID int64) error

	// Unlike removes a like if present
	Unlike(ctx context.Context, artifactID, userID int64) error

	// Favorite records a favorite; favoriting twice is a no-op
	Favorite(ctx context.Context, artifactID, userID int64) error

	// Unfavorite removes a favorite if present
	Unfavorite(ctx context.Context, artifactID, userID int64) error

	// AddComment persists a comment and fills in its ID and creation time
	AddComment(ctx context.Context, comment *model.Comment) error

	// ListComments retrieves comments on an artifact, oldest first
	ListComments(ctx context.Context, artifactID int64, limit, offset int) ([]*model.Comment, error)

	// RecordShare logs a share event for an artifact
	RecordShare(ctx context.Context, artifactID, userID int64) error
}
