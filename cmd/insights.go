package cmd

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Show mood and energy patterns",
	Long: `Show the pattern report for the whole journal: average energy by weekday,
how often each mood was recorded, when in the day you check in, and insights
drawn from the seven most recent check-ins.`,
	Example: `  moodlog insights
  moodlog insights --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return insightsRun(cmd.Context(), os.Stdout)
	},
}

func insightsRun(ctx context.Context, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	state, err := session.Load(ctx)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.ToReportJSON(state.Report))
	}
	var buf bytes.Buffer
	ui.FormatInsights(&buf, state.Report, markdownWidth(), appTheme().MarkdownStyle)
	return pager().OutputOrPage(w, buf.String(), false)
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}
