package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	cases := []struct {
		name     string
		content  string
		wantName string
		wantArgs []string
		wantOK   bool
	}{
		{"rate with mention", "!rate <@123>", "rate", []string{"<@123>"}, true},
		{"uppercase name normalized", "!AdminScore <@123>", "adminscore", []string{"<@123>"}, true},
		{"no prefix", "rate <@123>", "", nil, false},
		{"prefix only", "!", "", nil, false},
		{"bare command", "!setupreview", "setupreview", []string{}, true},
		{"extra whitespace", "!rate   <@123>   junk", "rate", []string{"<@123>", "junk"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			name, args, ok := parseCommand(tc.content, "!")
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantName, name)
			assert.Equal(t, tc.wantArgs, args)
		})
	}
}

func TestParseMention(t *testing.T) {
	id, ok := parseMention("<@123456789>")
	assert.True(t, ok)
	assert.Equal(t, "123456789", id)

	id, ok = parseMention("<@!123456789>")
	assert.True(t, ok)
	assert.Equal(t, "123456789", id)

	for _, bad := range []string{"123456789", "<@abc>", "<#123>", "@someone", ""} {
		_, ok := parseMention(bad)
		assert.False(t, ok, bad)
	}
}

func TestIsImageAttachment(t *testing.T) {
	assert.True(t, isImageAttachment(&discordgo.MessageAttachment{ContentType: "image/png"}))
	assert.True(t, isImageAttachment(&discordgo.MessageAttachment{ContentType: "image/gif"}))
	assert.False(t, isImageAttachment(&discordgo.MessageAttachment{ContentType: "video/mp4"}))
	assert.False(t, isImageAttachment(&discordgo.MessageAttachment{ContentType: "application/pdf"}))
	assert.False(t, isImageAttachment(&discordgo.MessageAttachment{ContentType: ""}))
}

func TestMemberDisplay(t *testing.T) {
	assert.Equal(t, "Nick", memberDisplay("Nick", "username"))
	assert.Equal(t, "username", memberDisplay("", "username"))
}
