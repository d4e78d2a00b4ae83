package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ragclient/internal/domain"
	"ragclient/internal/render"
)

// ErrSearchFailed is returned by ask when the search step failed.
var ErrSearchFailed = errors.New("search failed")

func (c *CLI) newAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <query...>",
		Short: "Run one query and print a page of results with its summary",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runAsk,
	}
	cmd.Flags().StringP("length", "l", "", "Summary length: short, medium or long (default from config)")
	cmd.Flags().IntP("page", "p", 1, "Result page to print")
	cmd.Flags().Bool("raw", false, "Print the summary without markdown rendering")
	return cmd
}

func (c *CLI) runAsk(cmd *cobra.Command, args []string) error {
	lengthFlag, _ := cmd.Flags().GetString("length")
	page, _ := cmd.Flags().GetInt("page")
	raw, _ := cmd.Flags().GetBool("raw")

	length := c.app.Length
	if lengthFlag != "" {
		l, err := domain.ParseSummaryLength(lengthFlag)
		if err != nil {
			return err
		}
		length = l
	}

	query := strings.Join(args, " ")
	if _, err := domain.NewQuery(query); err != nil {
		return err
	}

	st := c.app.Query.Run(cmd.Context(), query, length)
	if st.ResultsVisible && page != 1 {
		if !c.app.Query.GoTo(page) {
			return fmt.Errorf("page %d out of range (1-%d)", page, c.app.Query.Snapshot().TotalPages)
		}
	}

	v := render.Project(c.app.Query.Snapshot())
	out := cmd.OutOrStdout()
	writeView(out, v)

	if v.SummaryVisible {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Summary:")
		fmt.Fprintln(out, c.renderSummary(out, v.Summary, raw))
	}

	if v.Error != "" {
		return fmt.Errorf("%w: %s", ErrSearchFailed, v.Error)
	}
	return nil
}

func writeView(w io.Writer, v render.View) {
	switch {
	case v.Error != "":
		fmt.Fprintln(w, v.Error)
		return
	case v.Message != "":
		fmt.Fprintln(w, v.Message)
		return
	}
	for _, card := range v.Cards {
		fmt.Fprintf(w, "[%d] %s (%d%% match)\n", card.Position, card.Title, card.MatchPercent)
		if card.Text != "" {
			fmt.Fprintln(w, card.Text)
		}
	}
	if v.Pagination.Visible {
		fmt.Fprintln(w, v.Pagination.Indicator)
	}
	if v.SummaryError != "" {
		fmt.Fprintln(w, v.SummaryError)
	}
}

// renderSummary uses glamour only when w is a terminal.
func (c *CLI) renderSummary(w io.Writer, summary string, raw bool) string {
	f, ok := w.(*os.File)
	if raw || !ok || !term.IsTerminal(int(f.Fd())) {
		return summary
	}
	rendered, err := glamour.Render(summary, string(c.app.Theme.Theme()))
	if err != nil {
		return summary
	}
	return strings.TrimRight(rendered, "\n")
}
