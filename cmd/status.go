package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"

	"github.com/chris-regnier/moodlog/internal/shell"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	Streak     int
	StreakIcon string
	Mood       string
	MoodEmoji  string
	Backend    string
	HasToday   bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show journal prompt status",
	Long: `Show journal status for shell prompt integration.

Outputs today indicator, today's mood and the streak of consecutive days
with a check-in. Reads from cache when fresh, queries storage when stale.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  moodlog status
  moodlog status --env
  moodlog status --refresh
  moodlog status --format "{{.TodayIcon}} {{.MoodEmoji}} {{.Streak}}{{.StreakIcon}}"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFlag, _ := cmd.Flags().GetBool("env")
		refreshFlag, _ := cmd.Flags().GetBool("refresh")
		formatFlag, _ := cmd.Flags().GetString("format")
		return statusRun(cmd.Context(), os.Stdout, statusOptions{
			env:     envFlag,
			refresh: refreshFlag,
			format:  formatFlag,
			now:     time.Now(),
		})
	},
}

type statusOptions struct {
	env     bool
	refresh bool
	format  string
	now     time.Time
}

func statusRun(ctx context.Context, w io.Writer, opts statusOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ttl := shell.ParseTTL(appConfig.Shell.CacheTTL)
	st, err := shell.Cached(ctx, store, appConfig.DataDir, appConfig.Storage, ttl, opts.refresh, opts.now, logger)
	if err != nil {
		return fmt.Errorf("computing status: %w", err)
	}

	if opts.env {
		shell.WriteEnv(w, st, appConfig.Shell)
		return nil
	}

	if opts.format != "" {
		icon := appConfig.Shell.NoTodayIcon
		if st.Today {
			icon = appConfig.Shell.TodayIcon
		}
		data := statusData{
			TodayIcon:  icon,
			Streak:     st.Streak,
			StreakIcon: appConfig.Shell.StreakIcon,
			Backend:    appConfig.Storage,
			HasToday:   st.Today,
		}
		if st.Mood.Valid() {
			data.Mood = st.Mood.Description()
			data.MoodEmoji = st.Mood.Emoji()
		}
		return outputTemplate(w, data, opts.format)
	}

	_, err = fmt.Fprintln(w, shell.Format(st, appConfig.Shell))
	return err
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return usageError("invalid format template: %v", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func init() {
	statusCmd.Flags().Bool("env", false, "output shell environment variable assignments")
	statusCmd.Flags().Bool("refresh", false, "force cache refresh")
	statusCmd.Flags().String("format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
