package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramanasai/pomo/internal/history"
	"github.com/ramanasai/pomo/internal/utils"
)

var (
	historySince   string
	historyPage    string
	historyPerPage int
	historyFormat  string
	historyNoColor bool
	historyClear   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed phases per day",
	Long: `Examples:
	pomo history                          # every day, most recent first
	pomo history --since "last week"      # since a date (today, yesterday, 3 days, 2w ago, 2026-01-31)
	pomo history --format csv > out.csv   # default, table, json, csv, compact
	pomo history --page 2                 # pagination
	pomo history --clear                  # forget all history`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := utils.ParseFormat(historyFormat)
		if err != nil {
			return err
		}

		s, err := openSession(false)
		if err != nil {
			return err
		}
		defer closeSession(s)

		out := cmd.OutOrStdout()
		if historyClear {
			s.ClearHistory()
			fmt.Fprintln(out, "History cleared.")
			return nil
		}

		entries := s.History()
		list := &utils.HistoryList{}
		if historySince != "" {
			since, err := utils.ParseFlexibleDate(historySince, time.Now().In(cfg.Location()))
			if err != nil {
				return fmt.Errorf("invalid --since date %q: %w", historySince, err)
			}
			entries = history.Since(entries, since)
			list.Since = since.Format(history.DateLayout)
		}
		list.Total = len(entries)
		list.Totals = history.Sum(entries)

		// csv and json are for piping: no pagination unless asked for
		if historyPage == "" && (format == utils.FormatCSV || format == utils.FormatJSON) {
			list.Entries = entries
			return render(cmd, format, list)
		}

		pagination := utils.NewPagination(len(entries), historyPerPage, 1)
		current, err := utils.ParsePage(historyPage, pagination.TotalPages)
		if err != nil {
			return err
		}
		pagination = utils.NewPagination(len(entries), historyPerPage, current)

		list.Entries = utils.Page(entries, pagination)
		list.Page = pagination.Current
		list.PerPage = pagination.PerPage
		list.TotalPages = pagination.TotalPages
		return render(cmd, format, list)
	},
}

func render(cmd *cobra.Command, format utils.OutputFormat, list *utils.HistoryList) error {
	rc := utils.DefaultRenderConfig()
	rc.Format = format
	rc.Color = !historyNoColor
	rc.Header = history.HeaderFor(cfg.Locale)

	output, err := utils.NewRenderer(rc).RenderHistory(list)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), output)
	return nil
}

func init() {
	historyCmd.Flags().StringVar(&historySince, "since", "", "Only days on or after this date (today, yesterday, 'last week', '3 days', 2026-01-31, ...)")
	historyCmd.Flags().StringVar(&historyPage, "page", "", "Page number, or first/last")
	historyCmd.Flags().IntVar(&historyPerPage, "per-page", utils.DefaultPerPage, "Days per page")
	historyCmd.Flags().StringVar(&historyFormat, "format", "default", "Output format: default, table, json, csv, compact")
	historyCmd.Flags().BoolVar(&historyNoColor, "no-color", false, "Disable colored output")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete every history entry")
}
