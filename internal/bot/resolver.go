package bot

import "fmt"

// resolveDisplay returns the admin's display name and avatar URL. Lookup
// order: state-cached member, live guild member fetch, global user fetch,
// then a literal placeholder with no avatar.
func (b *Bot) resolveDisplay(guildID, userID string) (name, avatarURL string) {
	if guildID != "" {
		if m, err := b.session.State.Member(guildID, userID); err == nil && m.User != nil {
			return memberDisplay(m.Nick, m.User.Username), m.User.AvatarURL("")
		}
		if m, err := b.session.GuildMember(guildID, userID); err == nil && m.User != nil {
			return memberDisplay(m.Nick, m.User.Username), m.User.AvatarURL("")
		}
	}

	if u, err := b.session.User(userID); err == nil {
		return u.Username, u.AvatarURL("")
	}

	return fmt.Sprintf("User %s", userID), ""
}

func memberDisplay(nick, username string) string {
	if nick != "" {
		return nick
	}
	return username
}
