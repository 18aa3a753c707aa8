package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/auracity/admin-review-bot/internal/metrics"
	"github.com/auracity/admin-review-bot/internal/review"
)

const (
	componentCategory = "review:cat"
	componentStar     = "review:star"
	componentRefresh  = "review:refresh"
)

func categoryCustomID(adminID string) string {
	return componentCategory + ":" + adminID
}

func starCustomID(adminID string, cat review.Category) string {
	return fmt.Sprintf("%s:%s:%s", componentStar, adminID, cat)
}

func refreshCustomID(adminID string) string {
	return componentRefresh + ":" + adminID
}

func categorySelect(adminID string) discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, len(review.Categories))
	for _, c := range review.Categories {
		options = append(options, discordgo.SelectMenuOption{
			Label: c.Label(),
			Value: string(c),
		})
	}
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    categoryCustomID(adminID),
				Placeholder: "Pick a category to rate",
				Options:     options,
			},
		},
	}
}

func starSelect(adminID string, cat review.Category) discordgo.MessageComponent {
	options := make([]discordgo.SelectMenuOption, 0, 5)
	for i := 1; i <= 5; i++ {
		label := fmt.Sprintf("%d stars", i)
		if i == 1 {
			label = "1 star"
		}
		options = append(options, discordgo.SelectMenuOption{
			Label: label,
			Value: strconv.Itoa(i),
		})
	}
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				CustomID:    starCustomID(adminID, cat),
				Placeholder: "Pick 1-5 stars",
				Options:     options,
			},
		},
	}
}

func refreshButton(adminID string) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Refresh",
				Style:    discordgo.SecondaryButton,
				CustomID: refreshCustomID(adminID),
				Emoji:    &discordgo.ComponentEmoji{Name: "🔄"},
			},
		},
	}
}

// reviewComponents is the interactive control set under a !rate card.
func reviewComponents(adminID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		categorySelect(adminID),
		refreshButton(adminID),
	}
}

// persistentComponents is the control set under a !setupreview card.
func persistentComponents(adminID string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		refreshButton(adminID),
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	data := i.MessageComponentData()
	parts := strings.Split(data.CustomID, ":")
	if len(parts) < 3 || parts[0] != "review" {
		return
	}

	switch parts[0] + ":" + parts[1] {
	case componentCategory:
		metrics.InteractionsTotal.WithLabelValues("category_select").Inc()
		b.handleCategorySelect(s, i, parts[2])
	case componentStar:
		if len(parts) != 4 {
			return
		}
		metrics.InteractionsTotal.WithLabelValues("star_select").Inc()
		b.handleStarSelect(s, i, parts[2], parts[3])
	case componentRefresh:
		metrics.InteractionsTotal.WithLabelValues("refresh").Inc()
		b.handleRefresh(s, i, parts[2])
	}
}

// deferEphemeral acknowledges the interaction before any backend call so it
// cannot expire mid-flight.
func (b *Bot) deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		b.logger.Warn("interaction defer failed", zap.Error(err))
		return false
	}
	return true
}

func (b *Bot) followupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string, components ...discordgo.MessageComponent) {
	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:    content,
		Flags:      discordgo.MessageFlagsEphemeral,
		Components: components,
	})
	if err != nil {
		b.logger.Warn("interaction followup failed", zap.Error(err))
	}
}

// handleCategorySelect opens or reuses the rater's draft and prompts for a
// star value in the chosen category.
func (b *Bot) handleCategorySelect(s *discordgo.Session, i *discordgo.InteractionCreate, adminID string) {
	if !b.deferEphemeral(s, i) {
		return
	}

	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}

	cat, err := review.ParseCategory(data.Values[0])
	if err != nil {
		b.followupEphemeral(s, i, "❌ Unknown category.")
		return
	}

	raterID := interactionUserID(i)
	if err := b.svc.SelectCategory(context.Background(), adminID, raterID, cat); err != nil {
		b.logger.Error("category select failed",
			zap.String("admin_id", adminID),
			zap.String("rater_id", raterID),
			zap.Error(err))
		b.followupEphemeral(s, i, "❌ Something went wrong, please pick the category again.")
		return
	}

	b.followupEphemeral(s, i,
		fmt.Sprintf("Pick stars for **%s** (1-5)", cat.Label()),
		starSelect(adminID, cat))
}

// handleStarSelect records one star pick and either thanks the rater or
// prompts for the next category.
func (b *Bot) handleStarSelect(s *discordgo.Session, i *discordgo.InteractionCreate, adminID, rawCat string) {
	if !b.deferEphemeral(s, i) {
		return
	}

	data := i.MessageComponentData()
	if len(data.Values) == 0 {
		return
	}

	cat, err := review.ParseCategory(rawCat)
	if err != nil {
		b.followupEphemeral(s, i, "❌ Unknown category.")
		return
	}

	score, err := strconv.Atoi(data.Values[0])
	if err != nil {
		b.followupEphemeral(s, i, "❌ Invalid star value.")
		return
	}

	raterID := interactionUserID(i)
	result, err := b.svc.SubmitStar(context.Background(), adminID, raterID, cat, score)
	switch {
	case errors.Is(err, review.ErrSelfRating):
		b.followupEphemeral(s, i, "❌ You can't rate yourself.")
		return
	case errors.Is(err, review.ErrScoreOutOfRange):
		b.followupEphemeral(s, i, "❌ Stars must be between 1 and 5.")
		return
	case err != nil:
		metrics.StoreErrors.WithLabelValues("upsert_rating").Inc()
		b.logger.Error("rating submit failed",
			zap.String("admin_id", adminID),
			zap.String("rater_id", raterID),
			zap.Error(err))
		b.followupEphemeral(s, i, "❌ Saving failed. Your picks are kept; reselect the last category to retry.")
		return
	}

	if result.Completed {
		metrics.RatingsSubmitted.Inc()
		b.followupEphemeral(s, i, "🎉 All three categories submitted, thank you!")
		return
	}

	remaining := result.Draft.Remaining()
	labels := make([]string, 0, len(remaining))
	for _, c := range remaining {
		labels = append(labels, c.Label())
	}
	b.followupEphemeral(s, i, "Saved ✅ Still to rate: "+strings.Join(labels, ", "))
}

// handleRefresh re-renders the card in place. On failure the prior card is
// left untouched.
func (b *Bot) handleRefresh(s *discordgo.Session, i *discordgo.InteractionCreate, adminID string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredMessageUpdate,
	})
	if err != nil {
		b.logger.Warn("refresh defer failed", zap.Error(err))
		return
	}

	embed, err := b.buildCard(context.Background(), i.GuildID, adminID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("stats").Inc()
		b.logger.Error("card refresh failed", zap.String("admin_id", adminID), zap.Error(err))
		b.followupEphemeral(s, i, "❌ Refresh failed, please try again.")
		return
	}

	_, err = s.ChannelMessageEditComplex(&discordgo.MessageEdit{
		Channel: i.ChannelID,
		ID:      i.Message.ID,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	if err != nil {
		b.logger.Error("card edit failed", zap.String("admin_id", adminID), zap.Error(err))
		b.followupEphemeral(s, i, "❌ Refresh failed, please try again.")
	}
}
