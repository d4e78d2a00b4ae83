package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragclient/internal/domain"
	"ragclient/internal/history"
	"ragclient/internal/kvstore/memory"
	"ragclient/internal/pager"
	"ragclient/internal/prefs"
	"ragclient/internal/service"
	"ragclient/internal/suggest"
)

type fakeAPI struct {
	results    []domain.Document
	summary    string
	searchErr  error
	summaryErr error
	lastLength domain.SummaryLength
}

func (f *fakeAPI) Search(context.Context, domain.Query, int) (domain.SearchResponse, error) {
	return domain.SearchResponse{Results: f.results}, f.searchErr
}

func (f *fakeAPI) Summarize(_ context.Context, _ []any, length domain.SummaryLength) (domain.SummaryResponse, error) {
	f.lastLength = length
	return domain.SummaryResponse{Summary: f.summary}, f.summaryErr
}

func str(s string) *string { return &s }

type harness struct {
	api     *fakeAPI
	svc     *service.QueryService
	history *history.Store
	theme   *prefs.Store
	model   Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	kv := memory.NewStorage()
	api := &fakeAPI{
		results: []domain.Document{
			{Title: str("Alpha"), Text: str("first attention doc")},
			{Title: str("Beta"), Text: str("second doc")},
		},
		summary: "short summary",
	}
	h := history.New(kv, history.DefaultCapacity, nil)
	svc := service.NewQueryService(api, h, pager.New(1), 0, nil)
	themes := prefs.New(kv, prefs.ThemeDark, nil)
	m := New(context.Background(), svc, suggest.New(nil, h, suggest.DefaultLimit), themes, Options{})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return &harness{api: api, svc: svc, history: h, theme: themes, model: next.(Model)}
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// drain runs the search and summarize commands the way the Bubble Tea
// runtime would.
func (h *harness) drain(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case searchDoneMsg, summaryDoneMsg:
		default:
			return
		}
		cmd = h.send(msg)
	}
}

func TestModel_SubmitRunsSearchThenSummary(t *testing.T) {
	h := newHarness(t)
	h.typeText("attention")
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, h.svc.State().Loading)

	h.drain(t, cmd)

	st := h.svc.State()
	assert.False(t, st.Loading)
	assert.True(t, st.ResultsVisible)
	assert.True(t, st.SummaryVisible)
	assert.Equal(t, domain.SummaryMedium, h.api.lastLength)
	assert.Equal(t, []string{"attention"}, h.history.Load())

	out := h.model.View()
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "Page 1 of 2")
	assert.Contains(t, out, "short summary")
}

func TestModel_BlankSubmitDoesNothing(t *testing.T) {
	h := newHarness(t)
	h.typeText("   ")
	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Zero(t, h.svc.State().Generation)
}

func TestModel_PagingKeys(t *testing.T) {
	h := newHarness(t)
	h.typeText("doc")
	h.drain(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))

	h.send(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, h.svc.Snapshot().Page)
	assert.Contains(t, h.model.View(), "Beta")

	// already on the last page
	h.send(tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 2, h.svc.Snapshot().Page)

	h.send(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 1, h.svc.Snapshot().Page)
}

func TestModel_TabCyclesSummaryLength(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, domain.SummaryLong, h.model.length)

	h.typeText("doc")
	h.drain(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.Equal(t, domain.SummaryLong, h.api.lastLength)
}

func TestModel_SuggestionSelection(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.history.Append("transformer attention heads"))

	h.typeText("attention")
	require.NotEmpty(t, h.model.suggestions)
	first := h.model.suggestions[0]

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, h.model.selected)

	cmd := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, first, h.svc.State().Query)
	assert.Equal(t, first, h.model.input.Value())
	assert.Empty(t, h.model.suggestions)
}

func TestModel_EscHidesSuggestions(t *testing.T) {
	h := newHarness(t)
	h.typeText("what")
	require.NotEmpty(t, h.model.suggestions)
	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, h.model.suggestions)
	assert.Equal(t, -1, h.model.selected)
}

func TestModel_SearchErrorShown(t *testing.T) {
	h := newHarness(t)
	h.api.searchErr = errors.New("boom")
	h.typeText("doc")
	h.drain(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))

	st := h.svc.State()
	assert.False(t, st.Loading)
	assert.Equal(t, service.MsgSearchError, st.Error)
	out := h.model.View()
	assert.Contains(t, out, service.MsgSearchError)
	assert.NotContains(t, out, "Page 1 of")
}

func TestModel_SummaryErrorKeepsResults(t *testing.T) {
	h := newHarness(t)
	h.api.summaryErr = errors.New("boom")
	h.typeText("doc")
	h.drain(t, h.send(tea.KeyMsg{Type: tea.KeyEnter}))

	out := h.model.View()
	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, service.MsgSummaryError)
}

func TestModel_StaleSearchIgnored(t *testing.T) {
	h := newHarness(t)
	h.typeText("doc")
	first := h.send(tea.KeyMsg{Type: tea.KeyEnter})
	second := h.send(tea.KeyMsg{Type: tea.KeyEnter})

	// the first search lands after the second was submitted
	assert.Nil(t, h.send(first()))
	assert.True(t, h.svc.State().Loading)

	h.drain(t, second)
	assert.False(t, h.svc.State().Loading)
	assert.Equal(t, uint64(2), h.svc.State().Generation)
}

func TestModel_ToggleThemePersists(t *testing.T) {
	h := newHarness(t)
	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, prefs.ThemeLight, h.model.theme)
	assert.Equal(t, prefs.ThemeLight, h.theme.Theme())

	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	assert.Equal(t, prefs.ThemeDark, h.theme.Theme())
}

func TestModel_QuitKeys(t *testing.T) {
	h := newHarness(t)
	cmd := h.send(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestModel_ViewBeforeResize(t *testing.T) {
	kv := memory.NewStorage()
	h := history.New(kv, 0, nil)
	svc := service.NewQueryService(&fakeAPI{}, h, nil, 0, nil)
	m := New(context.Background(), svc, suggest.New(nil, h, 0), prefs.New(kv, "", nil), Options{})
	assert.Equal(t, "Loading...", m.View())
}
