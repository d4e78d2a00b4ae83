package tui

import (
	"github.com/charmbracelet/lipgloss"

	"ragclient/internal/prefs"
)

type palette struct {
	fg, muted, accent, highlight, err, ok, border lipgloss.Color
}

var palettes = map[prefs.Theme]palette{
	prefs.ThemeDark: {
		fg: "252", muted: "8", accent: "12", highlight: "11", err: "9", ok: "10", border: "240",
	},
	prefs.ThemeLight: {
		fg: "235", muted: "245", accent: "25", highlight: "166", err: "160", ok: "28", border: "250",
	},
}

type styles struct {
	header     lipgloss.Style
	muted      lipgloss.Style
	queryBox   lipgloss.Style
	resultBox  lipgloss.Style
	summaryBox lipgloss.Style
	title      lipgloss.Style
	score      lipgloss.Style
	highlight  lipgloss.Style
	suggestion lipgloss.Style
	selected   lipgloss.Style
	errText    lipgloss.Style
	status     lipgloss.Style
	enabled    lipgloss.Style
	disabled   lipgloss.Style
}

func newStyles(theme prefs.Theme) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes[prefs.ThemeDark]
	}
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1)
	return styles{
		header:     lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		muted:      lipgloss.NewStyle().Foreground(p.muted),
		queryBox:   box,
		resultBox:  box,
		summaryBox: box.BorderForeground(p.accent),
		title:      lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		score:      lipgloss.NewStyle().Foreground(p.muted),
		highlight:  lipgloss.NewStyle().Foreground(p.highlight).Bold(true),
		suggestion: lipgloss.NewStyle().Foreground(p.fg).PaddingLeft(2),
		selected:   lipgloss.NewStyle().Foreground(p.accent).Bold(true).PaddingLeft(2),
		errText:    lipgloss.NewStyle().Foreground(p.err),
		status:     lipgloss.NewStyle().Foreground(p.ok),
		enabled:    lipgloss.NewStyle().Foreground(p.accent),
		disabled:   lipgloss.NewStyle().Foreground(p.muted).Faint(true),
	}
}
