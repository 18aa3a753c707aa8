package models

// AdminProfile is one rateable member. CustomImage overrides the Discord
// avatar on the review card when set.
type AdminProfile struct {
	AdminID     string
	CustomImage string
}

// RatingRecord is one rater's complete opinion of one admin. The pair
// (AdminID, RaterID) is the conflict key; a resubmission replaces the row.
type RatingRecord struct {
	AdminID       string
	RaterID       string
	Service       int
	Solving       int
	Communication int
}

// RatingRow is the raw per-rater score triple used for aggregation.
type RatingRow struct {
	Service       int
	Solving       int
	Communication int
}
