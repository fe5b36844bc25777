// Package view implements the client-side collection view: pagination,
// text filtering, and reset logic over an in-memory snapshot of a remote
// collection. Everything here is pure local computation, deterministic
// given its inputs; no network, no suspension.
package view

import "strings"

// PageSize is the fixed number of items per rendered page.
const PageSize = 10

// View holds a snapshot plus the {searchTerm, page} state the UI renders
// from. The text func designates the field the search term matches against
// (case-insensitive substring).
type View[T any] struct {
	items []T
	text  func(T) string

	search string
	page   int
}

// New builds a view over items. text extracts the searchable field of an
// item.
func New[T any](items []T, text func(T) string) *View[T] {
	return &View[T]{items: items, text: text, page: 1}
}

// Reset replaces the snapshot, keeping the search term but returning to
// page 1.
func (v *View[T]) Reset(items []T) {
	v.items = items
	v.page = 1
}

// SetSearch updates the search term and resets to page 1, so a live search
// never leaves the user stranded beyond the new result set. A term of only
// whitespace disables filtering.
func (v *View[T]) SetSearch(term string) {
	v.search = term
	v.page = 1
}

// Search returns the current search term.
func (v *View[T]) Search() string { return v.search }

// Page returns the current page, always >= 1.
func (v *View[T]) Page() int { return v.page }

// SetPage jumps to page n. Values below 1 clamp to 1; values past the last
// page are kept and render as an empty page.
func (v *View[T]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	v.page = n
}

// Next advances one page, stopping at the last page.
func (v *View[T]) Next() {
	if v.HasNext() {
		v.page++
	}
}

// Prev goes back one page, stopping at page 1.
func (v *View[T]) Prev() {
	if v.page > 1 {
		v.page--
	}
}

// HasNext reports whether a page after the current one exists.
func (v *View[T]) HasNext() bool {
	return v.page < v.TotalPages()
}

// HasPrev reports whether a page before the current one exists.
func (v *View[T]) HasPrev() bool {
	return v.page > 1
}

// filtered returns the snapshot narrowed by the search term.
func (v *View[T]) filtered() []T {
	term := strings.ToLower(strings.TrimSpace(v.search))
	if term == "" {
		return v.items
	}

	var out []T
	for _, it := range v.items {
		if strings.Contains(strings.ToLower(v.text(it)), term) {
			out = append(out, it)
		}
	}
	return out
}

// Matches returns how many items the current search term matches.
func (v *View[T]) Matches() int {
	return len(v.filtered())
}

// TotalPages returns ceil(matches/PageSize); 0 for an empty result set.
func (v *View[T]) TotalPages() int {
	return (len(v.filtered()) + PageSize - 1) / PageSize
}

// Items returns the slice to render for the current page. A page past the
// end of the result set is an empty slice, never a panic.
func (v *View[T]) Items() []T {
	f := v.filtered()

	start := (v.page - 1) * PageSize
	if start >= len(f) {
		return nil
	}
	end := start + PageSize
	if end > len(f) {
		end = len(f)
	}
	return f[start:end]
}
