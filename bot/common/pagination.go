package common

// PageState describes a page of a collection after clamping.
type PageState struct {
	CurrentPage int
	TotalPages  int
	PageSize    int
	TotalItems  int
}

// HasPrevious reports whether a previous page exists
func (p PageState) HasPrevious() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a next page exists
func (p PageState) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// Paginate computes the page state for a collection of n items. The requested
// page is clamped to [1, TotalPages] and TotalPages is never below 1.
func Paginate(n, page, size int) PageState {
	if size <= 0 {
		size = 1
	}
	if n < 0 {
		n = 0
	}

	total := (n + size - 1) / size
	if total < 1 {
		total = 1
	}

	current := page
	if current > total {
		current = total
	}
	if current < 1 {
		current = 1
	}

	return PageState{
		CurrentPage: current,
		TotalPages:  total,
		PageSize:    size,
		TotalItems:  n,
	}
}

// PageSlice returns the items of the clamped page along with its state.
// An empty collection yields an empty, non-nil slice.
func PageSlice[T any](items []T, page, size int) ([]T, PageState) {
	state := Paginate(len(items), page, size)

	start := (state.CurrentPage - 1) * state.PageSize
	if start > len(items) {
		start = len(items)
	}
	end := start + state.PageSize
	if end > len(items) {
		end = len(items)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return out, state
}
