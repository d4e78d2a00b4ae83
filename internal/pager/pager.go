// Package pager pages through the current result set without refetching.
package pager

import "ragclient/internal/domain"

// DefaultPageSize is the number of documents shown per page.
const DefaultPageSize = 1

// Pager holds the latest result set and a 1-based page cursor.
type Pager struct {
	pageSize int
	results  []domain.Document
	cursor   int
}

// New returns an empty Pager. A non-positive pageSize means DefaultPageSize.
func New(pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{pageSize: pageSize, cursor: 1}
}

// Reset replaces the result set and moves back to page 1.
func (p *Pager) Reset(results []domain.Document) {
	p.results = append([]domain.Document(nil), results...)
	p.cursor = 1
}

// Clear drops the result set.
func (p *Pager) Clear() { p.Reset(nil) }

// PageSize is the number of documents per page.
func (p *Pager) PageSize() int { return p.pageSize }

// Len is the size of the result set.
func (p *Pager) Len() int { return len(p.results) }

// Empty reports whether there are no results.
func (p *Pager) Empty() bool { return len(p.results) == 0 }

// Results returns a copy of the whole result set.
func (p *Pager) Results() []domain.Document {
	return append([]domain.Document(nil), p.results...)
}

// Current is the 1-based page cursor.
func (p *Pager) Current() int { return p.cursor }

// TotalPages is ceil(n/pageSize), and 1 for an empty set.
func (p *Pager) TotalPages() int {
	n := (len(p.results) + p.pageSize - 1) / p.pageSize
	if n < 1 {
		return 1
	}
	return n
}

// GoTo moves to page and reports whether it did. Out-of-range pages and an
// empty result set leave the cursor alone.
func (p *Pager) GoTo(page int) bool {
	if p.Empty() || page < 1 || page > p.TotalPages() {
		return false
	}
	p.cursor = page
	return true
}

// Next moves one page forward.
func (p *Pager) Next() bool { return p.GoTo(p.cursor + 1) }

// Prev moves one page back.
func (p *Pager) Prev() bool { return p.GoTo(p.cursor - 1) }

// CanGoPrev reports whether a previous page exists.
func (p *Pager) CanGoPrev() bool { return !p.Empty() && p.cursor > 1 }

// CanGoNext reports whether a next page exists.
func (p *Pager) CanGoNext() bool { return !p.Empty() && p.cursor < p.TotalPages() }

// Offset is the index of the first document on the current page.
func (p *Pager) Offset() int { return (p.cursor - 1) * p.pageSize }

// VisibleSlice returns the documents on the current page.
func (p *Pager) VisibleSlice() []domain.Document {
	start := p.Offset()
	if start >= len(p.results) {
		return nil
	}
	end := min(start+p.pageSize, len(p.results))
	return append([]domain.Document(nil), p.results[start:end]...)
}
