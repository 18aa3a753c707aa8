package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/auracity/admin-review-bot/internal/review"
)

func TestCustomIDs(t *testing.T) {
	assert.Equal(t, "review:cat:123", categoryCustomID("123"))
	assert.Equal(t, "review:star:123:service", starCustomID("123", review.CategoryService))
	assert.Equal(t, "review:refresh:123", refreshCustomID("123"))
}

func TestCategorySelectOptions(t *testing.T) {
	row, ok := categorySelect("123").(discordgo.ActionsRow)
	require.True(t, ok)
	require.Len(t, row.Components, 1)

	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	require.Len(t, menu.Options, 3)

	values := make([]string, 0, len(menu.Options))
	for _, o := range menu.Options {
		values = append(values, o.Value)
		_, err := review.ParseCategory(o.Value)
		assert.NoError(t, err, "every option must parse back to a category")
	}
	assert.Equal(t, []string{"service", "solving", "communication"}, values)
}

func TestStarSelectOptions(t *testing.T) {
	row, ok := starSelect("123", review.CategorySolving).(discordgo.ActionsRow)
	require.True(t, ok)

	menu, ok := row.Components[0].(discordgo.SelectMenu)
	require.True(t, ok)
	require.Len(t, menu.Options, 5)

	assert.Equal(t, "1 star", menu.Options[0].Label)
	assert.Equal(t, "1", menu.Options[0].Value)
	assert.Equal(t, "5 stars", menu.Options[4].Label)
	assert.Equal(t, "5", menu.Options[4].Value)
}

func TestReviewComponents(t *testing.T) {
	assert.Len(t, reviewComponents("123"), 2)
	assert.Len(t, persistentComponents("123"), 1)
}

func TestInteractionUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Member: &discordgo.Member{User: &discordgo.User{ID: "42"}},
		},
	}
	assert.Equal(t, "42", interactionUserID(guild))

	dm := &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			User: &discordgo.User{ID: "43"},
		},
	}
	assert.Equal(t, "43", interactionUserID(dm))

	assert.Empty(t, interactionUserID(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
}
