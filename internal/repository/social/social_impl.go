package social

import (
	"context"
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

// socialRepository implements Repository using PostgreSQL
type socialRepository struct {
	pool Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool Pool) Repository {
	return &socialRepository{
		pool: pool,
	}
}

// ensurePublic verifies the artifact exists and is publicly visible.
// Engagement writes only apply to PUBLIC artifacts.
func (r *socialRepository) ensurePublic(ctx context.Context, artifactID int64) error {
	sql := "SELECT EXISTS (SELECT 1 FROM artifacts WHERE id = $1 AND visibility = 'PUBLIC')"

	var public bool
	if err := r.pool.QueryRow(ctx, sql, artifactID).Scan(&public); err != nil {
		return common.HandlePostgreSQLError(err, "failed to check artifact visibility")
	}
	if !public {
		return apperrors.New(apperrors.CodeNotFound, "artifact not found or not public")
	}
	return nil
}

// Like records a like, ignoring duplicates
func (r *socialRepository) Like(ctx context.Context, artifactID, userID int64) error {
	if err := r.ensurePublic(ctx, artifactID); err != nil {
		return err
	}

	sql := `INSERT INTO likes (artifact_id, user_id) VALUES ($1, $2)
		ON CONFLICT (artifact_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, sql, artifactID, userID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to like artifact")
	}
	return nil
}

// Unlike removes a like if present
func (r *socialRepository) Unlike(ctx context.Context, artifactID, userID int64) error {
	sql := "DELETE FROM likes WHERE artifact_id = $1 AND user_id = $2"
	_, err := r.pool.Exec(ctx, sql, artifactID, userID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to unlike artifact")
	}
	return nil
}

// Favorite records a favorite, ignoring duplicates
func (r *socialRepository) Favorite(ctx context.Context, artifactID, userID int64) error {
	if err := r.ensurePublic(ctx, artifactID); err != nil {
		return err
	}

	sql := `INSERT INTO favorites (artifact_id, user_id) VALUES ($1, $2)
		ON CONFLICT (artifact_id, user_id) DO NOTHING`
	_, err := r.pool.Exec(ctx, sql, artifactID, userID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to favorite artifact")
	}
	return nil
}

// Unfavorite removes a favorite if present
func (r *socialRepository) Unfavorite(ctx context.Context, artifactID, userID int64) error {
	sql := "DELETE FROM favorites WHERE artifact_id = $1 AND user_id = $2"
	_, err := r.pool.Exec(ctx, sql, artifactID, userID)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to unfavorite artifact")
	}
	return nil
}

// AddComment persists a new comment
func (r *socialRepository) AddComment(ctx context.Context, comment *model.Comment) error {
	if err := r.ensurePublic(ctx, comment.ArtifactID); err != nil {
		return err
	}

	sql := `INSERT INTO comments (artifact_id, user_id, content) VALUES ($1, $2, $3)
		RETURNING id, created_at`
	err := r.pool.QueryRow(ctx, sql, comment.ArtifactID, comment.UserID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return common.HandlePostgreSQLError(err, "failed to add comment")
	}
	return nil
}

// ListComments retrieves comments on an artifact, oldest first
func (r *socialRepository) ListComments(ctx context.Context, artifactID int64, limit, offset int) ([]*model.Comment, error) {
	sql := `SELECT id, artifact_id, user_id, content, created_at
		FROM comments WHERE artifact_id = $1 ORDER BY created_at LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, sql, artifactID, limit, offset)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to list comments")
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		var comment model.Comment
		err := rows.Scan(&comment.ID, &comment.ArtifactID, &comment.UserID, &comment.Content, &comment.CreatedAt)
		if err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan comment row")
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate comment rows")
	}

	return comments, nil
}

// RecordShare logs a share event
func (r *socialRepository) RecordShare(ctx context.Context, artifactID, userID int64) error {
	if err := r.ensurePublic(ctx, artifactID); err != nil {
		return err
	}

	sql := "INSERT INTO shares (artifact_id, user_id) VALUES ($1, $2)"
	_, err := r.pool.Exec(ctx, sql, artifactID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return apperrors.Wrap(err, apperrors.CodeNotFound, "artifact not found")
		}
		return common.HandlePostgreSQLError(err, "failed to record share")
	}
	return nil
}
