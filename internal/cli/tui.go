package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ragclient/internal/logger"
	"ragclient/internal/tui"
)

func (c *CLI) newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive interface (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runTUI,
	}
}

func (c *CLI) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	m := tui.New(ctx, c.app.Query, c.app.Suggest, c.app.Theme, tui.Options{
		Length: c.app.Length,
		Logger: logger.FromContext(ctx),
	})
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
