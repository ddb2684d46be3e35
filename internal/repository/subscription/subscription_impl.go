package subscription

import (
	"context"

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

// subscriptionRepository implements Repository using PostgreSQL
type subscriptionRepository struct {
	pool Pool
}

// NewRepository creates a new instance of Repository
func NewRepository(pool Pool) Repository {
	return &subscriptionRepository{
		pool: pool,
	}
}

// IsEntitled checks for an active, unexpired subscription
func (r *subscriptionRepository) IsEntitled(ctx context.Context, userID int64) (bool, error) {
	sql := `SELECT EXISTS (
		SELECT 1 FROM subscriptions
		WHERE user_id = $1 AND status = 'active' AND current_period_end > NOW()
	)`

	var entitled bool
	err := r.pool.QueryRow(ctx, sql, userID).Scan(&entitled)
	if err != nil {
		return false, common.HandlePostgreSQLError(err, "failed to check subscription entitlement")
	}
	return entitled, nil
}
