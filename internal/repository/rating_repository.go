package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/auracity/admin-review-bot/internal/repository/models"
)

// RatingRepository persists admin profiles and rating rows. Queries are
// written with ? placeholders and rebound to $N for the pgx driver.
type RatingRepository struct {
	db     *sql.DB
	driver string
}

func NewRatingRepository(db *sql.DB, driver string) *RatingRepository {
	return &RatingRepository{db: db, driver: driver}
}

// bind rewrites ? placeholders into $1..$N for drivers that require
// ordinal parameters.
func (r *RatingRepository) bind(query string) string {
	if r.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, c := range query {
		if c == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

// Migrate creates the admins and ratings tables if they do not exist yet.
// The DDL is valid for both sqlite and postgres.
func (r *RatingRepository) Migrate(ctx context.Context) error {
	// One statement per exec: the pgx driver does not accept
	// multi-statement strings.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS admins (
			admin_id     TEXT PRIMARY KEY,
			custom_image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS ratings (
			admin_id      TEXT NOT NULL,
			rater_id      TEXT NOT NULL,
			service       INTEGER NOT NULL,
			solving       INTEGER NOT NULL,
			communication INTEGER NOT NULL,
			PRIMARY KEY (admin_id, rater_id)
		)`,
	}
	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}
	return nil
}

// EnsureAdmin inserts the admin row if it is missing. Idempotent.
func (r *RatingRepository) EnsureAdmin(ctx context.Context, adminID string) error {
	const query = `
		INSERT INTO admins (admin_id) VALUES (?)
		ON CONFLICT (admin_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, r.bind(query), adminID); err != nil {
		return fmt.Errorf("exec EnsureAdmin: %w", err)
	}
	return nil
}

// SetAdminImage upserts the custom thumbnail URL for an admin, overwriting
// any previous value.
func (r *RatingRepository) SetAdminImage(ctx context.Context, adminID, url string) error {
	const query = `
		INSERT INTO admins (admin_id, custom_image) VALUES (?, ?)
		ON CONFLICT (admin_id) DO UPDATE SET custom_image = excluded.custom_image
	`
	if _, err := r.db.ExecContext(ctx, r.bind(query), adminID, url); err != nil {
		return fmt.Errorf("exec SetAdminImage: %w", err)
	}
	return nil
}

// CustomImage returns the stored thumbnail URL for an admin. A missing row
// or NULL column is the empty string with a nil error; only transport or
// query failures produce an error.
func (r *RatingRepository) CustomImage(ctx context.Context, adminID string) (string, error) {
	const query = `SELECT custom_image FROM admins WHERE admin_id = ?`

	var url sql.NullString
	err := r.db.QueryRowContext(ctx, r.bind(query), adminID).Scan(&url)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("query CustomImage: %w", err)
	}
	if !url.Valid {
		return "", nil
	}
	return url.String, nil
}

// UpsertRating writes one rater's complete score triple for an admin. The
// conflict target (admin_id, rater_id) makes a repeat submission replace the
// prior row in a single statement, so racing submissions converge to one
// full triple.
func (r *RatingRepository) UpsertRating(ctx context.Context, rec models.RatingRecord) error {
	const query = `
		INSERT INTO ratings (admin_id, rater_id, service, solving, communication)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (admin_id, rater_id) DO UPDATE SET
			service       = excluded.service,
			solving       = excluded.solving,
			communication = excluded.communication
	`
	_, err := r.db.ExecContext(ctx, r.bind(query),
		rec.AdminID, rec.RaterID, rec.Service, rec.Solving, rec.Communication)
	if err != nil {
		return fmt.Errorf("exec UpsertRating: %w", err)
	}
	return nil
}

// RatingsForAdmin fetches the raw score rows for one admin. An empty result
// is a valid zero-voter state, not an error.
func (r *RatingRepository) RatingsForAdmin(ctx context.Context, adminID string) ([]models.RatingRow, error) {
	const query = `
		SELECT service, solving, communication
		FROM ratings
		WHERE admin_id = ?
	`

	rows, err := r.db.QueryContext(ctx, r.bind(query), adminID)
	if err != nil {
		return nil, fmt.Errorf("query RatingsForAdmin: %w", err)
	}
	defer rows.Close()

	var results []models.RatingRow
	for rows.Next() {
		var row models.RatingRow
		if err := rows.Scan(&row.Service, &row.Solving, &row.Communication); err != nil {
			return nil, fmt.Errorf("scan RatingsForAdmin row: %w", err)
		}
		results = append(results, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate RatingsForAdmin: %w", err)
	}
	return results, nil
}
