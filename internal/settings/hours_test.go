package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpeningHours(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  []DayHours
	}{
		{
			name:  "decoded object",
			value: map[string]any{"dimanche": "Fermé", "lundi": "9h - 17h", "jours_feries": "Closed"},
			want: []DayHours{
				{Day: "Lundi", Hours: "9h - 17h"},
				{Day: "Dimanche", Hours: "Fermé", Closed: true},
				{Day: "jours feries", Hours: "Closed", Closed: true},
			},
		},
		{
			name:  "json text",
			value: `{"lundi_vendredi":"8h - 18h","samedi":"10h - 16h"}`,
			want: []DayHours{
				{Day: "Samedi", Hours: "10h - 16h"},
				{Day: "Lundi - Vendredi", Hours: "8h - 18h"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OpeningHours(tt.value))
		})
	}
}

func TestOpeningHoursDefault(t *testing.T) {
	for _, v := range []any{nil, "", "not json", map[string]any{}} {
		got := OpeningHours(v)
		if assert.Len(t, got, 7) {
			assert.Equal(t, "Lundi", got[0].Day)
			assert.Equal(t, DayHours{Day: "Dimanche", Hours: "Fermé", Closed: true}, got[6])
		}
	}
}
