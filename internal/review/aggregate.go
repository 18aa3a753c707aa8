package review

import "github.com/auracity/admin-review-bot/internal/repository/models"

// AggregateStats is the derived summary for one admin. It is recomputed on
// every render and never stored.
type AggregateStats struct {
	Voters           int
	AvgService       float64
	AvgSolving       float64
	AvgCommunication float64
	AvgTotal         float64
}

// Aggregate computes per-category arithmetic means and their overall mean.
// Zero rows yield all-zero averages. No rounding happens here; whole-star
// rounding is presentation logic.
func Aggregate(rows []models.RatingRow) AggregateStats {
	if len(rows) == 0 {
		return AggregateStats{}
	}

	var service, solving, communication int
	for _, r := range rows {
		service += r.Service
		solving += r.Solving
		communication += r.Communication
	}

	n := float64(len(rows))
	stats := AggregateStats{
		Voters:           len(rows),
		AvgService:       float64(service) / n,
		AvgSolving:       float64(solving) / n,
		AvgCommunication: float64(communication) / n,
	}
	stats.AvgTotal = (stats.AvgService + stats.AvgSolving + stats.AvgCommunication) / 3
	return stats
}
