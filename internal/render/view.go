// Package render projects orchestrator state into display structures. It
// has no terminal or styling dependencies; the TUI and the CLI both draw
// from the View it returns.
package render

import (
	"fmt"
	"regexp"
	"strings"

	"ragclient/internal/service"
)

// Span is a piece of display text, highlighted when it matches the query.
type Span struct {
	Text      string
	Highlight bool
}

// Card is one result on the current page.
type Card struct {
	// Position is 1-based within the whole result set.
	Position     int
	Title        string
	Text         string
	Spans        []Span
	MatchPercent int
}

// Pagination describes the pager controls.
type Pagination struct {
	Visible     bool
	Current     int
	Total       int
	Indicator   string
	PrevEnabled bool
	NextEnabled bool
}

// View is everything a renderer needs to draw one frame.
type View struct {
	Query   string
	Loading bool
	Error   string
	Message string

	ShowResults bool
	Cards       []Card
	Pagination  Pagination

	SummaryVisible bool
	Summary        string
	SummaryError   string
}

// PageIndicator formats the pager label.
func PageIndicator(current, total int) string {
	return fmt.Sprintf("Page %d of %d", current, total)
}

// Project builds the View for snap.
func Project(snap service.Snapshot) View {
	v := View{
		Query:          snap.Query,
		Loading:        snap.Loading,
		Error:          snap.Error,
		Message:        snap.Message,
		ShowResults:    snap.ResultsVisible,
		SummaryVisible: snap.SummaryVisible,
		Summary:        snap.Summary,
		SummaryError:   snap.SummaryError,
	}
	if !snap.ResultsVisible {
		return v
	}
	hl := newHighlighter(snap.Query)
	for i, d := range snap.Visible {
		pos := snap.Offset + i + 1
		text := d.DisplayText()
		v.Cards = append(v.Cards, Card{
			Position:     pos,
			Title:        d.DisplayTitle(pos),
			Text:         text,
			Spans:        hl.spans(text),
			MatchPercent: d.MatchPercent(),
		})
	}
	v.Pagination = Pagination{
		Visible:     true,
		Current:     snap.Page,
		Total:       snap.TotalPages,
		Indicator:   PageIndicator(snap.Page, snap.TotalPages),
		PrevEnabled: snap.CanPrev,
		NextEnabled: snap.CanNext,
	}
	return v
}

// Highlight splits text around case-insensitive occurrences of query.
func Highlight(text, query string) []Span {
	return newHighlighter(query).spans(text)
}

// highlighter holds the compiled pattern for one query. A nil re means the
// text is returned as a single plain span.
type highlighter struct {
	re *regexp.Regexp
}

func newHighlighter(query string) highlighter {
	query = strings.TrimSpace(query)
	if query == "" {
		return highlighter{}
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return highlighter{}
	}
	return highlighter{re: re}
}

func (h highlighter) spans(text string) []Span {
	if text == "" {
		return nil
	}
	if h.re == nil {
		return []Span{{Text: text}}
	}
	var spans []Span
	last := 0
	for _, m := range h.re.FindAllStringIndex(text, -1) {
		if m[0] > last {
			spans = append(spans, Span{Text: text[last:m[0]]})
		}
		spans = append(spans, Span{Text: text[m[0]:m[1]], Highlight: true})
		last = m[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}
