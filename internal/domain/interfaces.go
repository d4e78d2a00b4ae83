package domain

import (
	"context"
	"errors"
	"strings"
)

// ErrEmptyQuery is returned by NewQuery for blank input.
var ErrEmptyQuery = errors.New("query is empty")

// Query is a trimmed, non-empty search string.
type Query string

// NewQuery trims s and rejects it when nothing is left. Invalid UTF-8 is
// replaced with U+FFFD.
func NewQuery(s string) (Query, error) {
	q := strings.ToValidUTF8(strings.TrimSpace(s), "\uFFFD")
	if q == "" {
		return "", ErrEmptyQuery
	}
	return Query(q), nil
}

func (q Query) String() string { return string(q) }

// SearchResponse is the outcome of one search call. Results replaces any
// previous result set in full.
type SearchResponse struct {
	Results []Document
	Message string
}

// SummaryResponse carries the summary text, which may be empty.
type SummaryResponse struct {
	Summary string
}

// SearchService is the remote search and summarization API.
type SearchService interface {
	Search(ctx context.Context, query Query, topK int) (SearchResponse, error)
	Summarize(ctx context.Context, documents []any, length SummaryLength) (SummaryResponse, error)
}

// HistorySource exposes past queries, most recent first.
type HistorySource interface {
	Load() []string
}

// HistoryLog is a HistorySource that can record new queries.
type HistoryLog interface {
	HistorySource
	Append(query string) error
}
