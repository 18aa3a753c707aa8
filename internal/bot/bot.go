// Package bot binds the review flow to the Discord gateway: prefix
// commands, message components, and member resolution.
package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/auracity/admin-review-bot/internal/card"
	"github.com/auracity/admin-review-bot/internal/review"
)

type Bot struct {
	session *discordgo.Session
	svc     *review.Service
	logger  *zap.Logger
	prefix  string
}

// New creates the Discord session and registers the event handlers. The
// session is not opened until Start.
func New(token, prefix string, svc *review.Service, logger *zap.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	b := &Bot{
		session: session,
		svc:     svc,
		logger:  logger.Named("bot"),
		prefix:  prefix,
	}

	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent |
		discordgo.IntentsGuildMembers

	session.AddHandler(b.onReady)
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)

	return b, nil
}

// Start opens the gateway connection. Reconnection is discordgo's job.
func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("gateway ready",
		zap.String("user", r.User.Username),
		zap.Int("guilds", len(r.Guilds)))
}

// buildCard resolves the admin's display identity, stats, and thumbnail and
// renders the embed. The custom image, when present, wins over the Discord
// avatar.
func (b *Bot) buildCard(ctx context.Context, guildID, adminID string) (*discordgo.MessageEmbed, error) {
	stats, err := b.svc.Stats(ctx, adminID)
	if err != nil {
		return nil, err
	}

	name, avatarURL := b.resolveDisplay(guildID, adminID)

	thumb := avatarURL
	if custom, ok := b.svc.CustomImage(ctx, adminID); ok {
		thumb = custom
	}

	return card.Render(name, thumb, stats), nil
}
