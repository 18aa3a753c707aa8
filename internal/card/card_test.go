package card

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/auracity/admin-review-bot/internal/review"
)

func TestStars(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want string
	}{
		{"zero renders placeholder", 0.0, "—"},
		{"below half rounds down", 4.4, "⭐⭐⭐⭐"},
		{"above half rounds up", 4.6, "⭐⭐⭐⭐⭐"},
		{"half rounds up", 4.5, "⭐⭐⭐⭐⭐"},
		{"five stays five", 5.0, "⭐⭐⭐⭐⭐"},
		{"clamped above five", 5.4, "⭐⭐⭐⭐⭐"},
		{"one", 1.0, "⭐"},
		{"small average rounds to placeholder", 0.4, "—"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Stars(tc.in))
		})
	}
}

func TestRender(t *testing.T) {
	stats := review.AggregateStats{
		Voters:           3,
		AvgService:       4.0,
		AvgSolving:       3.5,
		AvgCommunication: 5.0,
		AvgTotal:         4.166666666666667,
	}

	t.Run("full card", func(t *testing.T) {
		e := Render("Aura", "https://cdn.example/a.png", stats)

		assert.Contains(t, e.Title, "Aura")
		assert.Len(t, e.Fields, 4)

		assert.Equal(t, "Overall", e.Fields[0].Name)
		assert.Equal(t, "**4.17** / 5 ⭐⭐⭐⭐", e.Fields[0].Value)

		assert.Equal(t, "Service", e.Fields[1].Name)
		assert.Equal(t, "4.00 / 5", e.Fields[1].Value)
		assert.Equal(t, "Problem Solving", e.Fields[2].Name)
		assert.Equal(t, "3.50 / 5", e.Fields[2].Value)
		assert.Equal(t, "Communication", e.Fields[3].Name)
		assert.Equal(t, "5.00 / 5", e.Fields[3].Value)

		assert.Equal(t, "Voters: 3", e.Footer.Text)
		assert.NotNil(t, e.Thumbnail)
		assert.Equal(t, "https://cdn.example/a.png", e.Thumbnail.URL)
	})

	t.Run("no thumbnail when URL absent", func(t *testing.T) {
		e := Render("Aura", "", stats)
		assert.Nil(t, e.Thumbnail)
	})

	t.Run("zero voters card", func(t *testing.T) {
		e := Render("Aura", "", review.AggregateStats{})

		assert.Equal(t, "**0.00** / 5 —", e.Fields[0].Value)
		assert.Equal(t, "0.00 / 5", e.Fields[1].Value)
		assert.Equal(t, "Voters: 0", e.Footer.Text)
	})
}
