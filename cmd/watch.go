package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the pattern summary every time the journal changes",
	Long: `Watch the data directory and print a fresh summary after every change,
including check-ins written by other moodlog processes. With --json each
report is printed as one JSON document per line.

Supported by the blob and markdown backends. Stop with Ctrl-C.`,
	Example: `  moodlog watch
  moodlog watch --json | jq .insights`,
	RunE: func(cmd *cobra.Command, args []string) error {
		w, ok := store.(storage.Watcher)
		if !ok {
			return usageError("storage %q does not support watch (use blob or markdown)", appConfig.Storage)
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		events, err := w.Watch(ctx)
		if err != nil {
			return err
		}
		return watchRun(ctx, os.Stdout, events)
	},
}

// watchRun prints the current state, then one line per store change until
// ctx is cancelled or events is closed.
func watchRun(ctx context.Context, out io.Writer, events <-chan storage.Event) error {
	err := follow(ctx, out, events)
	if errors.Is(err, context.Canceled) {
		logger.Debug("watch stopped")
		return nil
	}
	return err
}

func follow(ctx context.Context, out io.Writer, events <-chan storage.Event) error {
	state, err := session.Load(ctx)
	if err != nil {
		return err
	}
	if err := printWatchState(out, state); err != nil {
		return err
	}

	var printErr error
	err = session.Follow(ctx, events, func(s journal.State) {
		if printErr == nil {
			printErr = printWatchState(out, s)
		}
	})
	if printErr != nil {
		return printErr
	}
	return err
}

func printWatchState(w io.Writer, s journal.State) error {
	if jsonOutput {
		return json.NewEncoder(w).Encode(ui.ToReportJSON(s.Report))
	}
	lines := append([]string{}, s.Report.Insights...)
	if len(lines) == 0 {
		lines = []string{analysis.EmptyPatternsMessage}
	}
	_, err := fmt.Fprintf(w, "[%s] %d check-ins · %s\n", s.LoadedAt.Format("15:04:05"), len(s.Entries), strings.Join(lines, " "))
	if err == nil {
		logger.Debug("reported state", zap.Int("checkins", len(s.Entries)))
	}
	return err
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
