// Package card builds the review summary embed. It is pure presentation:
// no network calls, only struct construction, so it tests offline.
package card

import (
	"fmt"
	"math"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/auracity/admin-review-bot/internal/review"
)

const (
	accentColor = 0x64C3F1
	noScore     = "—"
)

// Stars renders a whole-star glyph string for an average. Rounding is half
// up (4.5 rounds to 5), clamped to [0,5]; zero renders the placeholder.
func Stars(v float64) string {
	n := int(math.Floor(v + 0.5))
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	if n == 0 {
		return noScore
	}
	return strings.Repeat("⭐", n)
}

// Render builds the review card for one admin. thumbURL may be empty.
func Render(adminName, thumbURL string, stats review.AggregateStats) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🌟 Admin Review — %s", adminName),
		Description: "Rate three categories; the averages update automatically.",
		Color:       accentColor,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:  "Overall",
				Value: fmt.Sprintf("**%.2f** / 5 %s", stats.AvgTotal, Stars(stats.AvgTotal)),
			},
			{
				Name:   review.CategoryService.Label(),
				Value:  fmt.Sprintf("%.2f / 5", stats.AvgService),
				Inline: true,
			},
			{
				Name:   review.CategorySolving.Label(),
				Value:  fmt.Sprintf("%.2f / 5", stats.AvgSolving),
				Inline: true,
			},
			{
				Name:   review.CategoryCommunication.Label(),
				Value:  fmt.Sprintf("%.2f / 5", stats.AvgCommunication),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Voters: %d", stats.Voters),
		},
	}

	if thumbURL != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: thumbURL}
	}
	return e
}
