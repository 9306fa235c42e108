package cmd

import (
	"bytes"
	"context"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var dateFilter string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List check-ins",
	Long: `List check-ins with mood, energy and a preview of the reflection, newest first.

On a terminal the list is interactive: type / to filter, enter to open a
check-in. Piped output is a plain table.`,
	Example: `  moodlog list
  moodlog list --date 2026-01-31
  moodlog list --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRun(cmd.Context(), os.Stdout, dateFilter)
	},
}

func listRun(ctx context.Context, w io.Writer, date string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var day time.Time
	if date != "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return usageError("invalid date format (use YYYY-MM-DD): %s", date)
		}
		day = t
	}

	state, err := session.Load(ctx)
	if err != nil {
		return err
	}
	entries := state.Entries
	if !day.IsZero() {
		entries = calendar.DayEntries(entries, day)
	}
	entries = ui.NewestFirst(entries)

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToEntriesJSON(entries))
	}
	if f, ok := w.(*os.File); ok && len(entries) > 0 && term.IsTerminal(int(f.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) {
		return ui.BrowseCheckins(entries, appTheme(), appConfig.MaxWidth)
	}
	var buf bytes.Buffer
	ui.FormatEntryList(&buf, entries)
	return pager().OutputOrPage(w, buf.String(), false)
}

func pager() ui.Pager {
	return ui.Pager{Theme: appTheme(), MaxWidth: appConfig.MaxWidth}
}

func init() {
	listCmd.Flags().StringVar(&dateFilter, "date", "", "filter by date (YYYY-MM-DD)")
	rootCmd.AddCommand(listCmd)
}
