package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/auracity/admin-review-bot/internal/repository/models"
)

const (
	dbTimeout = 3 * time.Second
)

var (
	ErrSelfRating      = errors.New("self-rating not allowed")
	ErrScoreOutOfRange = errors.New("score out of range")
	ErrInvalidCategory = errors.New("invalid category")
	ErrStorageFailure  = errors.New("storage failure")
)

// Service drives the rating flow: draft accumulation, the completing write,
// and stats aggregation.
type Service struct {
	storage RatingRepository
	drafts  DraftRegistry
	logger  *zap.Logger
	sfGroup singleflight.Group
}

// NewService creates a new review Service instance.
func NewService(storage RatingRepository, drafts DraftRegistry, logger *zap.Logger) *Service {
	if storage == nil {
		panic("storage must not be nil")
	}
	if drafts == nil {
		panic("drafts must not be nil")
	}
	if logger == nil {
		l, _ := zap.NewProduction()
		logger = l
	}
	return &Service{
		storage: storage,
		drafts:  drafts,
		logger:  logger,
	}
}

// EnsureAdmin upserts the admin's profile row. Idempotent.
func (s *Service) EnsureAdmin(ctx context.Context, adminID string) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.EnsureAdmin(dbCtx, adminID); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

// SetAdminImage stores a custom thumbnail URL for the admin's card.
func (s *Service) SetAdminImage(ctx context.Context, adminID, url string) error {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.storage.SetAdminImage(dbCtx, adminID, url); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	s.logger.Info("custom image set", zap.String("admin_id", adminID))
	return nil
}

// CustomImage returns the stored thumbnail URL for an admin. The image is
// cosmetic, so a failed lookup degrades to absent; the failure is still
// logged to keep it distinguishable from a correctly empty column.
func (s *Service) CustomImage(ctx context.Context, adminID string) (string, bool) {
	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	url, err := s.storage.CustomImage(dbCtx, adminID)
	if err != nil {
		s.logger.Warn("custom image lookup failed, using fallback",
			zap.String("admin_id", adminID),
			zap.Error(err))
		return "", false
	}
	if url == "" {
		return "", false
	}
	return url, true
}

// SelectCategory opens (or reuses) the rater's draft for the admin in
// response to a category pick. The star value arrives in a later event.
func (s *Service) SelectCategory(ctx context.Context, adminID, raterID string, cat Category) error {
	if _, err := ParseCategory(string(cat)); err != nil {
		return err
	}

	key := DraftKey{AdminID: adminID, RaterID: raterID}
	if _, err := s.drafts.GetOrCreate(ctx, key); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}
	return nil
}

// SubmitStar records one star pick. When the pick completes the draft, the
// full triple is written to storage and the draft is removed; a failed write
// leaves the draft intact so the rater can retry by reselecting the
// category.
func (s *Service) SubmitStar(ctx context.Context, adminID, raterID string, cat Category, score int) (SubmitResult, error) {
	if _, err := ParseCategory(string(cat)); err != nil {
		return SubmitResult{}, err
	}
	if score < 1 || score > 5 {
		return SubmitResult{}, fmt.Errorf("%w: %d", ErrScoreOutOfRange, score)
	}
	if adminID == raterID {
		return SubmitResult{}, ErrSelfRating
	}

	key := DraftKey{AdminID: adminID, RaterID: raterID}
	draft, err := s.drafts.SetField(ctx, key, cat, score)
	if err != nil {
		return SubmitResult{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if !draft.Complete() {
		return SubmitResult{Draft: draft}, nil
	}

	dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	rec := draft.record(adminID, raterID)
	if err := s.storage.UpsertRating(dbCtx, rec); err != nil {
		// Draft stays in the registry for a retry.
		return SubmitResult{Draft: draft}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
	}

	if err := s.drafts.Remove(ctx, key); err != nil {
		s.logger.Warn("draft cleanup failed after submit",
			zap.String("admin_id", adminID),
			zap.String("rater_id", raterID),
			zap.Error(err))
	}

	s.logger.Info("rating submitted",
		zap.String("admin_id", adminID),
		zap.String("rater_id", raterID),
		zap.Int("service", rec.Service),
		zap.Int("solving", rec.Solving),
		zap.Int("communication", rec.Communication))

	return SubmitResult{Draft: draft, Completed: true}, nil
}

func (d Draft) record(adminID, raterID string) models.RatingRecord {
	return models.RatingRecord{
		AdminID:       adminID,
		RaterID:       raterID,
		Service:       d.Service,
		Solving:       d.Solving,
		Communication: d.Communication,
	}
}

// Stats fetches the admin's rating rows and aggregates them. Concurrent
// refreshes for the same admin collapse into one storage read.
func (s *Service) Stats(ctx context.Context, adminID string) (AggregateStats, error) {
	v, err, _ := s.sfGroup.Do("stats:"+adminID, func() (any, error) {
		dbCtx, cancel := context.WithTimeout(ctx, dbTimeout)
		defer cancel()

		rows, err := s.storage.RatingsForAdmin(dbCtx, adminID)
		if err != nil {
			return AggregateStats{}, fmt.Errorf("%w: %v", ErrStorageFailure, err)
		}
		return Aggregate(rows), nil
	})
	if err != nil {
		return AggregateStats{}, err
	}
	return v.(AggregateStats), nil
}
