package mocks

import (
	"context"
	"errors"

	"github.com/auracity/admin-review-bot/internal/repository/models"
)

// MockRatingRepository is a mock implementation of the RatingRepository
// interface for testing the service layer. It uses function-based mocking
// for flexibility.
type MockRatingRepository struct {
	EnsureAdminFunc     func(ctx context.Context, adminID string) error
	SetAdminImageFunc   func(ctx context.Context, adminID, url string) error
	CustomImageFunc     func(ctx context.Context, adminID string) (string, error)
	UpsertRatingFunc    func(ctx context.Context, rec models.RatingRecord) error
	RatingsForAdminFunc func(ctx context.Context, adminID string) ([]models.RatingRow, error)
}

// EnsureAdmin implements the RatingRepository interface
func (m *MockRatingRepository) EnsureAdmin(ctx context.Context, adminID string) error {
	if m.EnsureAdminFunc != nil {
		return m.EnsureAdminFunc(ctx, adminID)
	}
	return nil
}

// SetAdminImage implements the RatingRepository interface
func (m *MockRatingRepository) SetAdminImage(ctx context.Context, adminID, url string) error {
	if m.SetAdminImageFunc != nil {
		return m.SetAdminImageFunc(ctx, adminID, url)
	}
	return nil
}

// CustomImage implements the RatingRepository interface
func (m *MockRatingRepository) CustomImage(ctx context.Context, adminID string) (string, error) {
	if m.CustomImageFunc != nil {
		return m.CustomImageFunc(ctx, adminID)
	}
	return "", nil
}

// UpsertRating implements the RatingRepository interface
func (m *MockRatingRepository) UpsertRating(ctx context.Context, rec models.RatingRecord) error {
	if m.UpsertRatingFunc != nil {
		return m.UpsertRatingFunc(ctx, rec)
	}
	return errors.New("UpsertRatingFunc not implemented")
}

// RatingsForAdmin implements the RatingRepository interface
func (m *MockRatingRepository) RatingsForAdmin(ctx context.Context, adminID string) ([]models.RatingRow, error) {
	if m.RatingsForAdminFunc != nil {
		return m.RatingsForAdminFunc(ctx, adminID)
	}
	return nil, errors.New("RatingsForAdminFunc not implemented")
}
