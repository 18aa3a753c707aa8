package review

import (
	"context"

	"github.com/auracity/admin-review-bot/internal/repository/models"
)

// RatingRepository defines the persistence operations the service needs.
type RatingRepository interface {
	EnsureAdmin(ctx context.Context, adminID string) error
	SetAdminImage(ctx context.Context, adminID, url string) error
	CustomImage(ctx context.Context, adminID string) (string, error)
	UpsertRating(ctx context.Context, rec models.RatingRecord) error
	RatingsForAdmin(ctx context.Context, adminID string) ([]models.RatingRow, error)
}

// DraftRegistry is the session store for in-progress ratings. SetField must
// apply its read-modify-write atomically per key: two interleaved picks for
// the same key may not lose either field.
type DraftRegistry interface {
	// GetOrCreate returns the draft for the key, inserting a fresh one if
	// none exists.
	GetOrCreate(ctx context.Context, key DraftKey) (Draft, error)
	// SetField overwrites one category's score and returns the draft as it
	// stands after the write.
	SetField(ctx context.Context, key DraftKey, cat Category, score int) (Draft, error)
	// Remove deletes the draft. Removing an absent key is not an error.
	Remove(ctx context.Context, key DraftKey) error
}
