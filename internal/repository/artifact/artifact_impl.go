package artifact

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/repository/common"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Pool interface for abstracting pgx connection pool
type Pool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Close()
}

// artifactRepository implements Repository using PostgreSQL
type artifactRepository struct {
	pool Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool Pool) Repository {
	return &artifactRepository{
		pool: pool,
	}
}

// selectColumns lists artifact columns plus social counts aggregated from
// the engagement tables
const selectColumns = `a.id, a.user_id, a.youtube_url, a.video_id, a.title, a.channel_name,
	a.thumbnail_url, a.duration, a.publish_date, a.transcript, a.summary,
	a.highlights, a.key_moments, a.topics, a.quotes, a.sentiment,
	a.host_name, a.guest_name, a.visibility, a.created_at,
	(SELECT COUNT(*) FROM likes l WHERE l.artifact_id = a.id) AS like_count,
	(SELECT COUNT(*) FROM comments c WHERE c.artifact_id = a.id) AS comment_count,
	(SELECT COUNT(*) FROM favorites f WHERE f.artifact_id = a.id) AS favorite_count`

// Create persists a new artifact record. All write failures surface as
// PERSISTENCE_FAILED so a pipeline run can distinguish them from
// enrichment problems.
func (r *artifactRepository) Create(ctx context.Context, artifact *model.Artifact) error {
	keyMoments, err := json.Marshal(artifact.KeyMoments)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodePersistenceFailed, "failed to encode key moments")
	}

	sql := `INSERT INTO artifacts
		(user_id, youtube_url, video_id, title, channel_name, thumbnail_url, duration,
		publish_date, transcript, summary, highlights, key_moments, topics, quotes,
		sentiment, host_name, guest_name, visibility)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id, created_at`

	err = r.pool.QueryRow(ctx, sql,
		artifact.UserID,
		artifact.YoutubeURL,
		artifact.VideoID,
		artifact.Title,
		artifact.ChannelName,
		artifact.ThumbnailURL,
		artifact.Duration,
		artifact.PublishDate,
		artifact.Transcript,
		artifact.Summary,
		artifact.Highlights,
		keyMoments,
		artifact.Topics,
		artifact.Quotes,
		artifact.Sentiment,
		artifact.HostName,
		artifact.GuestName,
		artifact.Visibility,
	).Scan(&artifact.ID, &artifact.CreatedAt)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodePersistenceFailed, "failed to create artifact")
	}
	return nil
}

// GetByID retrieves an artifact by its ID
func (r *artifactRepository) GetByID(ctx context.Context, id int64) (*model.Artifact, error) {
	sql := `SELECT ` + selectColumns + ` FROM artifacts a WHERE a.id = $1`
	row := r.pool.QueryRow(ctx, sql, id)

	artifact, err := scanArtifact(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.Wrap(err, apperrors.CodeNotFound, "artifact not found")
		}
		return nil, common.HandlePostgreSQLError(err, "failed to get artifact")
	}
	return artifact, nil
}

// ListByUser retrieves a user's artifacts, newest first
func (r *artifactRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*model.Artifact, error) {
	sql := `SELECT ` + selectColumns + ` FROM artifacts a
		WHERE a.user_id = $1 ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, sql, userID, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list artifacts by user")
	}
	defer rows.Close()

	return collectArtifacts(rows)
}

// ListPublic retrieves publicly visible artifacts, newest first
func (r *artifactRepository) ListPublic(ctx context.Context, limit, offset int) ([]*model.Artifact, error) {
	sql := `SELECT ` + selectColumns + ` FROM artifacts a
		WHERE a.visibility = $1 ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, sql, model.VisibilityPublic, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list public artifacts")
	}
	defer rows.Close()

	return collectArtifacts(rows)
}

// UpdateVisibility changes artifact visibility, scoped to the owning user
func (r *artifactRepository) UpdateVisibility(ctx context.Context, id, userID int64, visibility model.Visibility) error {
	sql := "UPDATE artifacts SET visibility = $3 WHERE id = $1 AND user_id = $2"
	tag, err := r.pool.Exec(ctx, sql, id, userID, visibility)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to update artifact visibility")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "artifact not found")
	}
	return nil
}

// Delete removes an artifact, scoped to the owning user
func (r *artifactRepository) Delete(ctx context.Context, id, userID int64) error {
	sql := "DELETE FROM artifacts WHERE id = $1 AND user_id = $2"
	tag, err := r.pool.Exec(ctx, sql, id, userID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to delete artifact")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.New(apperrors.CodeNotFound, "artifact not found")
	}
	return nil
}

// CountByUser returns how many artifacts the user has created
func (r *artifactRepository) CountByUser(ctx context.Context, userID int64) (int, error) {
	sql := "SELECT COUNT(*) FROM artifacts WHERE user_id = $1"
	var count int
	err := r.pool.QueryRow(ctx, sql, userID).Scan(&count)
	if err != nil {
		return 0, common.HandlePostgreSQLError(err, "failed to count artifacts by user")
	}
	return count, nil
}

// scanArtifact scans one artifact row including its social counts
func scanArtifact(row pgx.Row) (*model.Artifact, error) {
	var artifact model.Artifact
	var keyMoments []byte
	err := row.Scan(
		&artifact.ID,
		&artifact.UserID,
		&artifact.YoutubeURL,
		&artifact.VideoID,
		&artifact.Title,
		&artifact.ChannelName,
		&artifact.ThumbnailURL,
		&artifact.Duration,
		&artifact.PublishDate,
		&artifact.Transcript,
		&artifact.Summary,
		&artifact.Highlights,
		&keyMoments,
		&artifact.Topics,
		&artifact.Quotes,
		&artifact.Sentiment,
		&artifact.HostName,
		&artifact.GuestName,
		&artifact.Visibility,
		&artifact.CreatedAt,
		&artifact.LikeCount,
		&artifact.CommentCount,
		&artifact.FavoriteCount,
	)
	if err != nil {
		return nil, err
	}
	if len(keyMoments) > 0 {
		if err := json.Unmarshal(keyMoments, &artifact.KeyMoments); err != nil {
			return nil, err
		}
	}
	return &artifact, nil
}

// collectArtifacts scans all rows from a list query
func collectArtifacts(rows pgx.Rows) ([]*model.Artifact, error) {
	artifacts := []*model.Artifact{}
	for rows.Next() {
		artifact, err := scanArtifact(rows)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan artifact row")
		}
		artifacts = append(artifacts, artifact)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate artifact rows")
	}

	return artifacts, nil
}
