package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/editor"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	checkinMood   string
	checkinEnergy int
	checkinDate   string
)

// checkinInput collects everything a check-in can be built from.
type checkinInput struct {
	args        []string
	mood        string
	energy      *int
	date        string
	stdin       io.Reader
	interactive bool
	now         time.Time
}

// formRunner shows the interactive form; swapped out in tests.
var formRunner = func(initial entry.Submission) (entry.Submission, bool, error) {
	return ui.RunCheckinForm(ui.ResolveTheme(appConfig.Theme), initial)
}

// reflectionEditor opens the editor for a reflection; swapped out in tests.
var reflectionEditor = func(day string) (string, error) {
	return editor.Reflection(editor.ResolveEditor(appConfig.Editor), day)
}

var checkinCmd = &cobra.Command{
	Use:   "checkin [reflection...]",
	Short: "Record a check-in",
	Long: `Record how you feel: a mood (1-5), an energy level (0-10, default 5) and a
short reflection.

If the reflection is provided as arguments, it is used directly.
If "-" is provided, the reflection is read from stdin.
If no reflection is provided, your editor is opened.
On a terminal without --mood, the interactive check-in form is shown instead.`,
	Example: `  moodlog checkin --mood 4 --energy 7 "Productive morning, long walk at lunch"
  moodlog checkin --mood "very good" Finished the draft
  echo "Slow start, better afternoon" | moodlog checkin --mood 3 -
  moodlog checkin --mood 2 --date 2026-01-05 "Forgot to log this"
  moodlog checkin`,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := checkinInput{
			args:        args,
			mood:        checkinMood,
			date:        checkinDate,
			stdin:       os.Stdin,
			interactive: term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())),
			now:         time.Now(),
		}
		if cmd.Flags().Changed("energy") {
			e := checkinEnergy
			in.energy = &e
		}
		return checkinRun(cmd.Context(), os.Stdout, in)
	},
}

func checkinRun(ctx context.Context, w io.Writer, in checkinInput) error {
	if ctx == nil {
		ctx = context.Background()
	}
	sub := entry.Submission{Energy: in.energy}

	if in.mood != "" {
		m, err := entry.ParseMood(in.mood)
		if err != nil {
			return usageError("%v", err)
		}
		sub.Mood = m
	}

	if in.date != "" {
		day, err := time.ParseInLocation("2006-01-02", in.date, time.Local)
		if err != nil {
			return usageError("invalid date format (use YYYY-MM-DD): %s", in.date)
		}
		d := calendar.CheckinTime(day, in.now)
		sub.Date = &d
	}

	switch {
	case len(in.args) == 1 && in.args[0] == "-":
		data, err := io.ReadAll(in.stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		sub.Text = strings.TrimSpace(string(data))
	case len(in.args) > 0:
		sub.Text = strings.Join(in.args, " ")
	}

	if in.interactive && !sub.Mood.Valid() {
		final, ok, err := formRunner(sub)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(w, "Check-in cancelled.")
			return nil
		}
		sub = final
	} else if sub.Text == "" && len(in.args) == 0 {
		day := in.now.Format("2006-01-02")
		if sub.Date != nil {
			day = sub.Date.Format("2006-01-02")
		}
		text, err := reflectionEditor(day)
		if err != nil && !errors.Is(err, editor.ErrEmpty) {
			return err
		}
		sub.Text = text
	}

	state, err := session.Load(ctx)
	if err != nil {
		return err
	}
	_, e, err := session.Submit(ctx, state, sub, in.now)
	if err != nil {
		return err
	}

	if jsonOutput {
		return ui.FormatJSON(w, ui.ToEntryJSON(e))
	}
	ui.FormatCheckinSaved(w, e)
	return nil
}

func init() {
	checkinCmd.Flags().StringVarP(&checkinMood, "mood", "m", "", "mood: 1-5 or down|neutral|good|very good|excellent")
	checkinCmd.Flags().IntVarP(&checkinEnergy, "energy", "e", entry.DefaultEnergy, "energy level 0-10")
	checkinCmd.Flags().StringVarP(&checkinDate, "date", "d", "", "day of the check-in (YYYY-MM-DD), defaults to now")
	rootCmd.AddCommand(checkinCmd)
}
