package cmd

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var calendarMonth string

// calendarDayJSON is one day of the month in JSON output.
type calendarDayJSON struct {
	Date    string        `json:"date"`
	Checkin *ui.EntryJSON `json:"checkin,omitempty"`
}

type calendarJSON struct {
	Month  string            `json:"month"`
	Streak int               `json:"streak"`
	Days   []calendarDayJSON `json:"days"`
}

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Show a month of check-ins",
	Long: `Show a month grid with the mood of each day's first check-in and its
energy level. Defaults to the current month.`,
	Example: `  moodlog calendar
  moodlog calendar --month 2026-01
  moodlog calendar --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return calendarRun(cmd.Context(), os.Stdout, calendarMonth, time.Now())
	},
}

func calendarRun(ctx context.Context, w io.Writer, month string, now time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}
	year, mon := now.Year(), now.Month()
	if month != "" {
		t, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			return usageError("invalid month format (use YYYY-MM): %s", month)
		}
		year, mon = t.Year(), t.Month()
	}

	state, err := session.Load(ctx)
	if err != nil {
		return err
	}
	m := calendar.BuildMonth(year, mon, state.Entries)

	if jsonOutput {
		out := calendarJSON{
			Month:  time.Date(year, mon, 1, 0, 0, 0, 0, time.Local).Format("2006-01"),
			Streak: calendar.Streak(state.Entries, now),
			Days:   make([]calendarDayJSON, 0, len(m.Cells)),
		}
		for _, c := range m.Cells {
			d := calendarDayJSON{Date: c.Date.Format("2006-01-02")}
			if c.Entry != nil {
				ej := ui.ToEntryJSON(*c.Entry)
				d.Checkin = &ej
			}
			out.Days = append(out.Days, d)
		}
		return ui.FormatJSON(w, out)
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		_, err := io.WriteString(w, ui.RenderMonth(m, appTheme(), time.Time{}, now)+"\n")
		return err
	}
	ui.FormatCalendar(w, m)
	return nil
}

func init() {
	calendarCmd.Flags().StringVar(&calendarMonth, "month", "", "month to show (YYYY-MM)")
	rootCmd.AddCommand(calendarCmd)
}
