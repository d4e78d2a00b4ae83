package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragclient/internal/domain"
	"ragclient/internal/service"
)

func strPtr(s string) *string { return &s }

func TestPageIndicator(t *testing.T) {
	assert.Equal(t, "Page 2 of 3", PageIndicator(2, 3))
}

func TestProject_HiddenResults(t *testing.T) {
	snap := service.Snapshot{
		State: service.State{Query: "q", Message: "No relevant documents found."},
	}
	v := Project(snap)
	assert.False(t, v.ShowResults)
	assert.Empty(t, v.Cards)
	assert.False(t, v.Pagination.Visible)
	assert.Equal(t, "No relevant documents found.", v.Message)
}

func TestProject_SecondPage(t *testing.T) {
	score := 0.456
	second := domain.Document{Text: strPtr("Judge Leifman said"), RelevanceScore: &score}
	snap := service.Snapshot{
		State: service.State{
			Query:          "leifman",
			ResultsVisible: true,
			Loading:        true,
		},
		Visible:    []domain.Document{second},
		Offset:     1,
		Page:       2,
		TotalPages: 3,
		CanPrev:    true,
		CanNext:    true,
	}

	v := Project(snap)
	assert.True(t, v.Loading)
	require.Len(t, v.Cards, 1)
	card := v.Cards[0]
	assert.Equal(t, 2, card.Position)
	assert.Equal(t, "Document 2", card.Title)
	assert.Equal(t, "Judge Leifman said", card.Text)
	assert.Equal(t, 46, card.MatchPercent)
	assert.Equal(t, []Span{{Text: "Judge "}, {Text: "Leifman", Highlight: true}, {Text: " said"}}, card.Spans)

	assert.Equal(t, Pagination{
		Visible: true, Current: 2, Total: 3, Indicator: "Page 2 of 3",
		PrevEnabled: true, NextEnabled: true,
	}, v.Pagination)
}

func TestProject_Summary(t *testing.T) {
	snap := service.Snapshot{State: service.State{SummaryVisible: true, Summary: "sum", SummaryError: ""}}
	v := Project(snap)
	assert.True(t, v.SummaryVisible)
	assert.Equal(t, "sum", v.Summary)
}

func TestHighlight(t *testing.T) {
	assert.Nil(t, Highlight("", "x"))
	assert.Equal(t, []Span{{Text: "plain"}}, Highlight("plain", " "))
	assert.Equal(t,
		[]Span{{Text: "a.b", Highlight: true}, {Text: " vs "}, {Text: "A.B", Highlight: true}},
		Highlight("a.b vs A.B", "a.b"))
	assert.Equal(t, []Span{{Text: "no match here"}}, Highlight("no match here", "zzz"))
}

func TestHighlight_InvalidUTF8Query(t *testing.T) {
	var spans []Span
	require.NotPanics(t, func() { spans = Highlight("caf\xff text", "caf\xff") })
	assert.Equal(t, []Span{{Text: "caf\xff text"}}, spans)
}

func TestProject_InvalidUTF8Query(t *testing.T) {
	q, err := domain.NewQuery("caf\xff")
	require.NoError(t, err)
	snap := service.Snapshot{
		State:      service.State{Query: q.String(), ResultsVisible: true},
		Visible:    []domain.Document{{Text: strPtr("un caf\uFFFD noir")}},
		Page:       1,
		TotalPages: 1,
	}
	var v View
	require.NotPanics(t, func() { v = Project(snap) })
	require.Len(t, v.Cards, 1)
	assert.Equal(t, []Span{{Text: "un "}, {Text: "caf\uFFFD", Highlight: true}, {Text: " noir"}}, v.Cards[0].Spans)
}
