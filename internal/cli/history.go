package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show or clear the query history",
		Args:  cobra.NoArgs,
		RunE:  c.runHistoryList,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List past queries, most recent first",
			Args:  cobra.NoArgs,
			RunE:  c.runHistoryList,
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget all past queries",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := c.app.History.Clear(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			},
		},
	)
	return cmd
}

func (c *CLI) runHistoryList(cmd *cobra.Command, _ []string) error {
	entries := c.app.History.Load()
	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No queries yet.")
		return nil
	}
	for i, q := range entries {
		fmt.Fprintf(out, "%2d  %s\n", i+1, q)
	}
	return nil
}
