package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"ragclient/internal/service"
)

type searchDoneMsg struct{ outcome service.SearchOutcome }

type summaryDoneMsg struct{ outcome service.SummaryOutcome }

func searchCmd(ctx context.Context, q QueryPort, t service.SearchTicket) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg{outcome: q.Search(ctx, t)}
	}
}

func summarizeCmd(ctx context.Context, q QueryPort, t service.SummaryTicket) tea.Cmd {
	return func() tea.Msg {
		return summaryDoneMsg{outcome: q.Summarize(ctx, t)}
	}
}
