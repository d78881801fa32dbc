package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type standing struct {
	name                 string
	points, wins, losses int
}

func standingKey(s standing) RankKey {
	return RankKey{Points: s.points, Wins: s.wins, Losses: s.losses}
}

func names(items []standing) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.name
	}
	return out
}

func TestSortRanking(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []standing
		want  []string
	}{
		{
			name: "points descending",
			input: []standing{
				{"a", 3, 1, 0}, {"b", 9, 3, 0}, {"c", 6, 2, 1},
			},
			want: []string{"b", "c", "a"},
		},
		{
			name: "equal points broken by wins",
			input: []standing{
				{"a", 6, 1, 0}, {"b", 6, 2, 0},
			},
			want: []string{"b", "a"},
		},
		{
			name: "equal points and wins broken by fewer losses",
			input: []standing{
				{"a", 6, 2, 3}, {"b", 6, 2, 1},
			},
			want: []string{"b", "a"},
		},
		{
			name: "full ties keep original order",
			input: []standing{
				{"x", 4, 1, 1}, {"y", 4, 1, 1}, {"z", 4, 1, 1}, {"top", 5, 0, 0},
			},
			want: []string{"top", "x", "y", "z"},
		},
		{
			name:  "empty",
			input: []standing{},
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			items := append([]standing(nil), tt.input...)
			SortRanking(items, standingKey)
			assert.Equal(t, tt.want, names(items))
		})
	}
}

func TestRankLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "🥇", RankLabel(0))
	assert.Equal(t, "🥈", RankLabel(1))
	assert.Equal(t, "🥉", RankLabel(2))
	assert.Equal(t, "4.", RankLabel(3))
	assert.Equal(t, "10.", RankLabel(9))
}
