package bot

import (
	"context"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/auracity/admin-review-bot/internal/metrics"
)

var mentionPattern = regexp.MustCompile(`^<@!?(\d+)>$`)

// parseCommand splits a prefixed message into a command name and its
// argument tokens. ok is false for non-command messages.
func parseCommand(content, prefix string) (name string, args []string, ok bool) {
	if !strings.HasPrefix(content, prefix) {
		return "", nil, false
	}
	fields := strings.Fields(strings.TrimPrefix(content, prefix))
	if len(fields) == 0 {
		return "", nil, false
	}
	return strings.ToLower(fields[0]), fields[1:], true
}

// parseMention extracts a user ID from a <@id> or <@!id> token.
func parseMention(token string) (string, bool) {
	m := mentionPattern.FindStringSubmatch(token)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// isImageAttachment accepts an attachment as a card thumbnail only when its
// declared content type is an image.
func isImageAttachment(a *discordgo.MessageAttachment) bool {
	return strings.HasPrefix(a.ContentType, "image/")
}

func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	name, args, ok := parseCommand(m.Content, b.prefix)
	if !ok {
		return
	}

	switch name {
	case "rate":
		metrics.CommandsTotal.WithLabelValues("rate").Inc()
		b.handleRate(s, m, args)
	case "adminscore":
		metrics.CommandsTotal.WithLabelValues("adminscore").Inc()
		b.handleAdminScore(s, m, args)
	case "setupreview":
		metrics.CommandsTotal.WithLabelValues("setupreview").Inc()
		b.handleSetupReview(s, m, args)
	}
}

// deleteInvocation removes the command message to keep the channel tidy.
// Best-effort: the bot may lack Manage Messages.
func (b *Bot) deleteInvocation(s *discordgo.Session, m *discordgo.MessageCreate) {
	if err := s.ChannelMessageDelete(m.ChannelID, m.ID); err != nil {
		b.logger.Debug("could not delete command message", zap.Error(err))
	}
}

func (b *Bot) adminFromArgs(m *discordgo.MessageCreate, args []string) (string, bool) {
	if len(m.Mentions) > 0 {
		return m.Mentions[0].ID, true
	}
	if len(args) > 0 {
		if id, ok := parseMention(args[0]); ok {
			return id, true
		}
	}
	return "", false
}

func (b *Bot) reply(s *discordgo.Session, channelID, content string) {
	if _, err := s.ChannelMessageSend(channelID, content); err != nil {
		b.logger.Warn("reply failed", zap.Error(err))
	}
}

// handleRate begins a rating flow: ensures the admin row, applies an
// attached custom image, and posts the interactive card.
func (b *Bot) handleRate(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	ctx := context.Background()
	b.deleteInvocation(s, m)

	adminID, ok := b.adminFromArgs(m, args)
	if !ok {
		b.reply(s, m.ChannelID, "Usage: "+b.prefix+"rate @admin")
		return
	}

	if err := b.svc.EnsureAdmin(ctx, adminID); err != nil {
		metrics.StoreErrors.WithLabelValues("ensure_admin").Inc()
		b.logger.Error("ensure admin failed", zap.String("admin_id", adminID), zap.Error(err))
		b.reply(s, m.ChannelID, "❌ Could not start the review, please try again.")
		return
	}

	if len(m.Attachments) > 0 {
		a := m.Attachments[0]
		if !isImageAttachment(a) {
			b.reply(s, m.ChannelID, "🖼️ Only image attachments can be used as the card thumbnail.")
		} else if err := b.svc.SetAdminImage(ctx, adminID, a.URL); err != nil {
			metrics.StoreErrors.WithLabelValues("set_admin_image").Inc()
			b.logger.Error("set custom image failed", zap.String("admin_id", adminID), zap.Error(err))
		}
	}

	embed, err := b.buildCard(ctx, m.GuildID, adminID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("stats").Inc()
		b.logger.Error("card build failed", zap.String("admin_id", adminID), zap.Error(err))
		b.reply(s, m.ChannelID, "❌ Could not load the review card, please try again.")
		return
	}

	_, err = s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: reviewComponents(adminID),
	})
	if err != nil {
		b.logger.Error("card send failed", zap.String("admin_id", adminID), zap.Error(err))
	}
}

// handleAdminScore posts a read-only card.
func (b *Bot) handleAdminScore(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	ctx := context.Background()
	b.deleteInvocation(s, m)

	adminID, ok := b.adminFromArgs(m, args)
	if !ok {
		b.reply(s, m.ChannelID, "Usage: "+b.prefix+"adminscore @admin")
		return
	}

	embed, err := b.buildCard(ctx, m.GuildID, adminID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("stats").Inc()
		b.logger.Error("card build failed", zap.String("admin_id", adminID), zap.Error(err))
		b.reply(s, m.ChannelID, "❌ Could not load the score card, please try again.")
		return
	}

	if _, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
	}); err != nil {
		b.logger.Error("card send failed", zap.String("admin_id", adminID), zap.Error(err))
	}
}

// handleSetupReview posts a persistent card with a refresh control.
// Administrator-only; anyone else is silently declined.
func (b *Bot) handleSetupReview(s *discordgo.Session, m *discordgo.MessageCreate, args []string) {
	ctx := context.Background()
	b.deleteInvocation(s, m)

	perms, err := s.UserChannelPermissions(m.Author.ID, m.ChannelID)
	if err != nil || perms&discordgo.PermissionAdministrator == 0 {
		b.logger.Warn("setupreview declined",
			zap.String("user_id", m.Author.ID),
			zap.Error(err))
		return
	}

	adminID, ok := b.adminFromArgs(m, args)
	if !ok {
		b.reply(s, m.ChannelID, "Usage: "+b.prefix+"setupreview @admin")
		return
	}

	if err := b.svc.EnsureAdmin(ctx, adminID); err != nil {
		metrics.StoreErrors.WithLabelValues("ensure_admin").Inc()
		b.logger.Error("ensure admin failed", zap.String("admin_id", adminID), zap.Error(err))
		b.reply(s, m.ChannelID, "❌ Could not set up the review card, please try again.")
		return
	}

	embed, err := b.buildCard(ctx, m.GuildID, adminID)
	if err != nil {
		metrics.StoreErrors.WithLabelValues("stats").Inc()
		b.logger.Error("card build failed", zap.String("admin_id", adminID), zap.Error(err))
		b.reply(s, m.ChannelID, "❌ Could not set up the review card, please try again.")
		return
	}

	if _, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: persistentComponents(adminID),
	}); err != nil {
		b.logger.Error("card send failed", zap.String("admin_id", adminID), zap.Error(err))
	}
}
