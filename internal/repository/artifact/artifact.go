package artifact

import (
	"context"

	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
)

// Repository defines operations for Artifact persistence
type Repository interface {
	// Create persists a new artifact and fills in its ID and creation time
	Create(ctx context.Context, artifact *model.Artifact) error

	// GetByID retrieves an artifact with its social engagement counts
	GetByID(ctx context.Context, id int64) (*model.Artifact, error)

	// ListByUser retrieves a user's artifacts, newest first, with pagination
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.Artifact, error)

	// ListPublic retrieves publicly visible artifacts, newest first, with
	// social engagement counts and pagination
	ListPublic(ctx context.Context, limit, offset int) ([]*model.Artifact, error)

	// UpdateVisibility changes the visibility of an artifact owned by the user
	UpdateVisibility(ctx context.Context, id, userID int64, visibility model.Visibility) error

	// Delete removes an artifact owned by the user
	Delete(ctx context.Context, id, userID int64) error

	// CountByUser returns the number of artifacts the user has created
	CountByUser(ctx context.Context, userID int64) (int, error)
}
