package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (c *CLI) newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [partial...]",
		Short: "Print autocomplete suggestions for partial input",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, s := range c.app.Suggest.Suggest(strings.Join(args, " ")) {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
}
