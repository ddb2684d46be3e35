package artifact

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	apperrors "github.com/ChaudharyUsman/Transcript-Generate/internal/errors"
	"github.com/ChaudharyUsman/Transcript-Generate/internal/model"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArtifact() *model.Artifact {
	host := "Jane Host"
	return &model.Artifact{
		UserID:       42,
		YoutubeURL:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		VideoID:      "dQw4w9WgXcQ",
		Title:        "Never Gonna Give You Up",
		ChannelName:  "Rick Astley",
		ThumbnailURL: "https://img.example/default.jpg",
		Duration:     "PT3M32S",
		PublishDate:  time.Date(2009, 10, 25, 0, 0, 0, 0, time.UTC),
		Transcript:   "we're no strangers to love",
		Summary:      "A song about commitment.",
		Highlights:   []string{"iconic chorus"},
		KeyMoments:   []model.KeyMoment{{Timestamp: "0.0s", Moment: "the chorus begins"}},
		Topics:       []string{"music"},
		Quotes:       []string{"never gonna give you up"},
		Sentiment:    model.SentimentPositive,
		HostName:     &host,
		GuestName:    nil,
		Visibility:   model.VisibilityPrivate,
	}
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestArtifactRepository_Create(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		wantErr bool
	}{
		{
			name: "successful creation",
			setup: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows([]string{"id", "created_at"}).
					AddRow(int64(7), time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
				mock.ExpectQuery("INSERT INTO artifacts").
					WithArgs(anyArgs(18)...).
					WillReturnRows(rows)
			},
			wantErr: false,
		},
		{
			name: "database error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO artifacts").
					WithArgs(anyArgs(18)...).
					WillReturnError(assert.AnError)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup pgxmock
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			// Setup expectations
			tt.setup(mock)

			// Create repository
			repo := NewRepository(mock)

			// Execute test
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			artifact := testArtifact()
			err = repo.Create(ctx, artifact)

			// Verify result
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperrors.CodePersistenceFailed, apperrors.Code(err))
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(7), artifact.ID)
				assert.False(t, artifact.CreatedAt.IsZero())
			}

			// Verify all expectations were met
			err = mock.ExpectationsWereMet()
			assert.NoError(t, err, "pgxmock expectations were not met")
		})
	}
}

func artifactColumns() []string {
	return []string{
		"id", "user_id", "youtube_url", "video_id", "title", "channel_name",
		"thumbnail_url", "duration", "publish_date", "transcript", "summary",
		"highlights", "key_moments", "topics", "quotes", "sentiment",
		"host_name", "guest_name", "visibility", "created_at",
		"like_count", "comment_count", "favorite_count",
	}
}

func artifactRow(t *testing.T, artifact *model.Artifact, likes, comments, favorites int) []any {
	t.Helper()
	keyMoments, err := json.Marshal(artifact.KeyMoments)
	require.NoError(t, err)
	return []any{
		int64(7), artifact.UserID, artifact.YoutubeURL, artifact.VideoID,
		artifact.Title, artifact.ChannelName, artifact.ThumbnailURL,
		artifact.Duration, artifact.PublishDate, artifact.Transcript,
		artifact.Summary, artifact.Highlights, keyMoments, artifact.Topics,
		artifact.Quotes, artifact.Sentiment, artifact.HostName,
		artifact.GuestName, artifact.Visibility,
		time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		likes, comments, favorites,
	}
}

func TestArtifactRepository_GetByID(t *testing.T) {
	t.Run("artifact found with social counts", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		fixture := testArtifact()
		rows := pgxmock.NewRows(artifactColumns()).
			AddRow(artifactRow(t, fixture, 3, 2, 1)...)
		mock.ExpectQuery("SELECT (.+) FROM artifacts a WHERE a.id = \\$1").
			WithArgs(int64(7)).
			WillReturnRows(rows)

		repo := NewRepository(mock)
		artifact, err := repo.GetByID(context.Background(), 7)
		require.NoError(t, err)

		assert.Equal(t, int64(7), artifact.ID)
		assert.Equal(t, fixture.Title, artifact.Title)
		assert.Equal(t, fixture.KeyMoments, artifact.KeyMoments)
		assert.Equal(t, 3, artifact.LikeCount)
		assert.Equal(t, 2, artifact.CommentCount)
		assert.Equal(t, 1, artifact.FavoriteCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("artifact not found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery("SELECT (.+) FROM artifacts a WHERE a.id = \\$1").
			WithArgs(int64(99)).
			WillReturnRows(pgxmock.NewRows(artifactColumns()))

		repo := NewRepository(mock)
		_, err = repo.GetByID(context.Background(), 99)

		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestArtifactRepository_UpdateVisibility(t *testing.T) {
	t.Run("successful update", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE artifacts SET visibility").
			WithArgs(int64(7), int64(42), model.VisibilityPublic).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))

		repo := NewRepository(mock)
		err = repo.UpdateVisibility(context.Background(), 7, 42, model.VisibilityPublic)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not owned or missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("UPDATE artifacts SET visibility").
			WithArgs(int64(7), int64(999), model.VisibilityPublic).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))

		repo := NewRepository(mock)
		err = repo.UpdateVisibility(context.Background(), 7, 999, model.VisibilityPublic)

		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
	})
}

func TestArtifactRepository_Delete(t *testing.T) {
	t.Run("successful deletion", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM artifacts").
			WithArgs(int64(7), int64(42)).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))

		repo := NewRepository(mock)
		err = repo.Delete(context.Background(), 7, 42)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not owned or missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectExec("DELETE FROM artifacts").
			WithArgs(int64(7), int64(999)).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))

		repo := NewRepository(mock)
		err = repo.Delete(context.Background(), 7, 999)

		require.Error(t, err)
		assert.Equal(t, apperrors.CodeNotFound, apperrors.Code(err))
	})
}

func TestArtifactRepository_CountByUser(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	rows := pgxmock.NewRows([]string{"count"}).AddRow(2)
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM artifacts WHERE user_id = \\$1").
		WithArgs(int64(42)).
		WillReturnRows(rows)

	repo := NewRepository(mock)
	count, err := repo.CountByUser(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
