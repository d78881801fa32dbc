package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		n, page     int
		size        int
		wantCurrent int
		wantTotal   int
	}{
		{"first page", 25, 1, 10, 1, 3},
		{"last partial page", 25, 3, 10, 3, 3},
		{"beyond last clamps", 20, 3, 10, 2, 2},
		{"zero clamps to first", 20, 0, 10, 1, 2},
		{"negative clamps to first", 20, -4, 10, 1, 2},
		{"empty collection", 0, 1, 10, 1, 1},
		{"empty collection high page", 0, 7, 10, 1, 1},
		{"exact multiple", 30, 3, 10, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := Paginate(tt.n, tt.page, tt.size)
			assert.Equal(t, tt.wantCurrent, state.CurrentPage)
			assert.Equal(t, tt.wantTotal, state.TotalPages)
			assert.Equal(t, tt.size, state.PageSize)
		})
	}
}

func TestPageSlice_ClampEquivalence(t *testing.T) {
	t.Parallel()

	for n := 0; n <= 23; n++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		for size := 1; size <= 6; size++ {
			total := max(1, (n+size-1)/size)
			for page := -2; page <= total+3; page++ {
				clamped := min(max(page, 1), total)

				got, state := PageSlice(items, page, size)
				want, wantState := PageSlice(items, clamped, size)

				assert.Equal(t, want, got, "n=%d size=%d page=%d", n, size, page)
				assert.Equal(t, wantState, state)
				assert.Equal(t, clamped, state.CurrentPage)
			}
		}
	}
}

func TestPageSlice_EmptyCollection(t *testing.T) {
	t.Parallel()

	got, state := PageSlice([]string{}, 1, 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, 1, state.CurrentPage)
	assert.Equal(t, 1, state.TotalPages)
	assert.False(t, state.HasNext())
	assert.False(t, state.HasPrevious())
}

func TestPageSlice_Contents(t *testing.T) {
	t.Parallel()

	items := []string{"a", "b", "c", "d", "e"}
	got, state := PageSlice(items, 3, 2)
	assert.Equal(t, []string{"e"}, got)
	assert.Equal(t, 3, state.TotalPages)
	assert.True(t, state.HasPrevious())
	assert.False(t, state.HasNext())
}
