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
)

var showDate string

// dayJSON is the JSON shape of a day view; Checkin is null on an empty day.
type dayJSON struct {
	Date    string        `json:"date"`
	Checkin *ui.EntryJSON `json:"checkin"`
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the check-in of a day",
	Long: `Display the check-in recorded on a day: mood, energy and the full reflection.

When a day has several check-ins, the first one recorded is shown, as on the
calendar. Use "moodlog list --date" to see all of them.`,
	Example: `  moodlog show --date 2026-01-05
  moodlog show --date 2026-01-05 --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showRun(cmd.Context(), os.Stdout, showDate)
	},
}

func showRun(ctx context.Context, w io.Writer, date string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if date == "" {
		return usageError("--date is required (YYYY-MM-DD)")
	}
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return usageError("invalid date format (use YYYY-MM-DD): %s", date)
	}

	state, err := session.Load(ctx)
	if err != nil {
		return err
	}
	e, ok := calendar.DayEntry(state.Entries, day)

	if jsonOutput {
		out := dayJSON{Date: date}
		if ok {
			ej := ui.ToEntryJSON(e)
			out.Checkin = &ej
		}
		return ui.FormatJSON(w, out)
	}

	if !ok {
		ui.FormatNoDayEntry(w, day)
		return nil
	}
	var buf bytes.Buffer
	ui.FormatDayDetail(&buf, e, markdownWidth(), appTheme().MarkdownStyle)
	return pager().OutputOrPage(w, buf.String(), false)
}

func appTheme() ui.Theme {
	return ui.ResolveTheme(appConfig.Theme)
}

// markdownWidth is the wrap width for rendered reflections and reports.
func markdownWidth() int {
	if appConfig.MaxWidth > 0 {
		return appConfig.MaxWidth
	}
	return ui.DefaultMaxWidth
}

func init() {
	showCmd.Flags().StringVar(&showDate, "date", "", "day to show (YYYY-MM-DD)")
	rootCmd.AddCommand(showCmd)
}
