package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"ragclient/internal/domain"
	"ragclient/internal/prefs"
	"ragclient/internal/render"
	"ragclient/internal/service"
)

// QueryPort is the TUI-facing subset of the query orchestrator.
type QueryPort interface {
	Submit(input string, length domain.SummaryLength) (service.SearchTicket, bool)
	SelectSuggestion(suggestion string, length domain.SummaryLength) (service.SearchTicket, bool)
	Search(ctx context.Context, t service.SearchTicket) service.SearchOutcome
	ApplySearch(o service.SearchOutcome) (service.SummaryTicket, bool)
	Summarize(ctx context.Context, t service.SummaryTicket) service.SummaryOutcome
	ApplySummary(o service.SummaryOutcome) bool
	NextPage() bool
	PrevPage() bool
	Snapshot() service.Snapshot
}

// Suggester produces autocomplete candidates.
type Suggester interface {
	Suggest(partial string) []string
}

// ThemeStore reads and flips the persisted theme.
type ThemeStore interface {
	Theme() prefs.Theme
	Toggle() (prefs.Theme, error)
}

// Options configures a new Model.
type Options struct {
	Length domain.SummaryLength
	Logger *zap.Logger
}

// Model is the Bubble Tea model for the TUI application.
type Model struct {
	ctx       context.Context
	query     QueryPort
	suggester Suggester
	themes    ThemeStore
	logger    *zap.Logger

	input       textinput.Model
	viewport    viewport.Model
	suggestions []string
	selected    int
	length      domain.SummaryLength
	theme       prefs.Theme
	styles      styles
	view        render.View
	status      string
	width       int
	ready       bool
}

// New creates a new TUI model instance.
func New(ctx context.Context, query QueryPort, suggester Suggester, themes ThemeStore, opts Options) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0

	length := opts.Length
	if length == "" {
		length = domain.SummaryMedium
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	theme := themes.Theme()
	m := Model{
		ctx:       ctx,
		query:     query,
		suggester: suggester,
		themes:    themes,
		logger:    logger,
		input:     ti,
		viewport:  viewport.New(0, 0),
		selected:  -1,
		length:    length,
		theme:     theme,
		styles:    newStyles(theme),
		status:    "Type to search. Tab: summary length, PgUp/PgDn: page, Ctrl+T: theme.",
	}
	m.refresh()
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and network events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		_, rh := m.styles.resultBox.GetFrameSize()
		_, qh := m.styles.queryBox.GetFrameSize()
		reserved := 2 + 1 + 1 + qh + 8 // header, pager, status, input, summary
		vh := msg.Height - reserved
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, vh-rh)
		m.input.Width = max(10, msg.Width-6)
		m.refresh()
		return m, nil

	case searchDoneMsg:
		next, ok := m.query.ApplySearch(msg.outcome)
		m.refresh()
		if ok {
			return m, summarizeCmd(m.ctx, m.query, next)
		}
		return m, nil

	case summaryDoneMsg:
		m.query.ApplySummary(msg.outcome)
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "enter":
			if m.selected >= 0 && m.selected < len(m.suggestions) {
				return m.onSelectSuggestion(m.suggestions[m.selected])
			}
			return m.onSubmit(m.input.Value())
		case "tab":
			m.length = m.length.Next()
			return m, nil
		case "ctrl+t":
			m.onToggleTheme()
			return m, nil
		case "esc":
			m.suggestions = nil
			m.selected = -1
			return m, nil
		case "down":
			if len(m.suggestions) > 0 {
				m.selected = (m.selected + 1) % len(m.suggestions)
				return m, nil
			}
		case "up":
			if len(m.suggestions) > 0 {
				if m.selected <= 0 {
					m.selected = len(m.suggestions) - 1
				} else {
					m.selected--
				}
				return m, nil
			}
		case "pgdown", "ctrl+n":
			m.onPageChange(+1)
			return m, nil
		case "pgup", "ctrl+p":
			m.onPageChange(-1)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.onInput(m.input.Value())
	}
	return m, cmd
}

func (m Model) onSubmit(text string) (tea.Model, tea.Cmd) {
	ticket, ok := m.query.Submit(text, m.length)
	if !ok {
		return m, nil
	}
	return m.dispatch(ticket)
}

func (m Model) onSelectSuggestion(s string) (tea.Model, tea.Cmd) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	ticket, ok := m.query.SelectSuggestion(s, m.length)
	if !ok {
		return m, nil
	}
	return m.dispatch(ticket)
}

func (m Model) dispatch(ticket service.SearchTicket) (tea.Model, tea.Cmd) {
	m.suggestions = nil
	m.selected = -1
	m.refresh()
	return m, searchCmd(m.ctx, m.query, ticket)
}

func (m *Model) onInput(value string) {
	m.suggestions = m.suggester.Suggest(value)
	m.selected = -1
}

func (m *Model) onPageChange(delta int) {
	var moved bool
	if delta > 0 {
		moved = m.query.NextPage()
	} else {
		moved = m.query.PrevPage()
	}
	if moved {
		m.refresh()
		m.viewport.GotoTop()
	}
}

func (m *Model) onToggleTheme() {
	theme, err := m.themes.Toggle()
	if err != nil {
		m.logger.Warn("toggle theme failed", zap.Error(err))
		m.status = "Could not save theme."
	}
	if theme != "" {
		m.theme = theme
		m.styles = newStyles(theme)
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.view = render.Project(m.query.Snapshot())
	m.viewport.SetContent(m.renderResults())
}

// View renders the TUI layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(m.styles.header.Render("RAG Search"))
	b.WriteString(m.styles.muted.Render(fmt.Sprintf("  summary: %s  theme: %s", m.length, m.theme)))
	b.WriteString("\n")
	b.WriteString(m.styles.queryBox.Render(m.input.View()))
	b.WriteString("\n")
	if len(m.suggestions) > 0 {
		b.WriteString(m.renderSuggestions())
		b.WriteString("\n")
	}
	b.WriteString(m.styles.resultBox.Render(m.viewport.View()))
	b.WriteString("\n")
	if m.view.Pagination.Visible {
		b.WriteString(m.renderPagination())
		b.WriteString("\n")
	}
	if s := m.renderSummary(); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.status.Render(m.status))
	return b.String()
}

func (m Model) renderSuggestions() string {
	lines := make([]string, len(m.suggestions))
	for i, s := range m.suggestions {
		if i == m.selected {
			lines[i] = m.styles.selected.Render("› " + s)
		} else {
			lines[i] = m.styles.suggestion.Render("  " + s)
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderResults() string {
	v := m.view
	switch {
	case v.Error != "":
		return m.styles.errText.Render(v.Error)
	case v.Message != "":
		return m.styles.muted.Render(v.Message)
	case !v.ShowResults && v.Loading:
		return m.styles.muted.Render("Searching...")
	case !v.ShowResults:
		return m.styles.muted.Render("No results yet.")
	}
	var b strings.Builder
	for i, c := range v.Cards {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(m.styles.title.Render(c.Title))
		b.WriteString("  ")
		b.WriteString(m.styles.score.Render(fmt.Sprintf("%d%% match", c.MatchPercent)))
		b.WriteString("\n\n")
		for _, sp := range c.Spans {
			if sp.Highlight {
				b.WriteString(m.styles.highlight.Render(sp.Text))
			} else {
				b.WriteString(sp.Text)
			}
		}
	}
	return lipgloss.NewStyle().Width(max(10, m.viewport.Width-2)).Render(b.String())
}

func (m Model) renderPagination() string {
	p := m.view.Pagination
	prev, next := m.styles.disabled, m.styles.disabled
	if p.PrevEnabled {
		prev = m.styles.enabled
	}
	if p.NextEnabled {
		next = m.styles.enabled
	}
	return prev.Render("‹ Prev") + "  " + p.Indicator + "  " + next.Render("Next ›")
}

func (m Model) renderSummary() string {
	v := m.view
	switch {
	case v.SummaryVisible:
		width := max(20, m.width-4)
		return m.styles.summaryBox.Width(width).Render(v.Summary)
	case v.SummaryError != "":
		return m.styles.errText.Render(v.SummaryError)
	case v.Loading && v.ShowResults:
		return m.styles.muted.Render("Summarizing...")
	}
	return ""
}
