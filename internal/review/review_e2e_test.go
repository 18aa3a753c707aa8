package review_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/auracity/admin-review-bot/internal/draft"
	"github.com/auracity/admin-review-bot/internal/repository"
	"github.com/auracity/admin-review-bot/internal/review"
)

// End-to-end flow over a real sqlite-backed repository and the in-memory
// draft registry: empty card, a full submission, then an overwriting
// resubmission.
func TestReviewFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewRatingRepository(db, "sqlite3")
	require.NoError(t, repo.Migrate(ctx))

	svc := review.NewService(repo, draft.NewMemoryRegistry(), zap.NewNop())

	admin := "900000000000000001"
	rater := "900000000000000002"

	require.NoError(t, svc.EnsureAdmin(ctx, admin))
	// Idempotent on repeat.
	require.NoError(t, svc.EnsureAdmin(ctx, admin))

	t.Run("fresh admin shows zero voters", func(t *testing.T) {
		stats, err := svc.Stats(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, 0, stats.Voters)
		require.Equal(t, "0.00", fmt.Sprintf("%.2f", stats.AvgTotal))
	})

	t.Run("full submission lands as one record", func(t *testing.T) {
		for _, cat := range review.Categories {
			res, err := svc.SubmitStar(ctx, admin, rater, cat, 5)
			require.NoError(t, err)
			require.Equal(t, cat == review.CategoryCommunication, res.Completed)
		}

		stats, err := svc.Stats(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, 1, stats.Voters)
		require.Equal(t, "5.00", fmt.Sprintf("%.2f", stats.AvgTotal))
	})

	t.Run("resubmission overwrites instead of adding", func(t *testing.T) {
		for _, cat := range review.Categories {
			_, err := svc.SubmitStar(ctx, admin, rater, cat, 1)
			require.NoError(t, err)
		}

		stats, err := svc.Stats(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, 1, stats.Voters, "overwrite must not add a voter")
		require.Equal(t, "1.00", fmt.Sprintf("%.2f", stats.AvgTotal))
	})

	t.Run("second rater adds a voter", func(t *testing.T) {
		rater2 := "900000000000000003"
		for _, cat := range review.Categories {
			_, err := svc.SubmitStar(ctx, admin, rater2, cat, 5)
			require.NoError(t, err)
		}

		stats, err := svc.Stats(ctx, admin)
		require.NoError(t, err)
		require.Equal(t, 2, stats.Voters)
		require.Equal(t, "3.00", fmt.Sprintf("%.2f", stats.AvgTotal))
	})

	t.Run("custom image round-trips", func(t *testing.T) {
		_, ok := svc.CustomImage(ctx, admin)
		require.False(t, ok)

		require.NoError(t, svc.SetAdminImage(ctx, admin, "https://cdn.example/a.png"))

		url, ok := svc.CustomImage(ctx, admin)
		require.True(t, ok)
		require.Equal(t, "https://cdn.example/a.png", url)
	})
}
