package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/chris-regnier/moodlog/internal/logging"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	cfgFile        string
	jsonOutput     bool
	storageBackend string
	appConfig      *config.Config
	store          storage.Store
	session        *journal.Session
	logger         = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "moodlog",
	Short: "A mood and energy journal",
	Long: `moodlog records daily check-ins (mood, energy and a short reflection) and
shows the patterns in them: energy by weekday, mood frequencies, the time of
day you check in most, and a few plain-language insights.

Run without a subcommand on a terminal to open the dashboard.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appConfig = cfg

		// Override storage backend from flag
		if storageBackend != "" {
			appConfig.Storage = storageBackend
			if err := appConfig.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
		}

		log, err := logging.New(appConfig.Log)
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		logger = log

		store, err = openStore(cmd.Context(), appConfig, logger)
		if err != nil {
			return err
		}
		session = journal.New(store, logger)
		logger.Debug("storage ready", zap.String("backend", appConfig.Storage), zap.String("data_dir", appConfig.DataDir))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		_ = logger.Sync()
		if store == nil {
			return nil
		}
		return store.Close()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			// Non-TTY: fall back to the insights report
			return insightsRun(cmd.Context(), os.Stdout)
		}
		return dashboardRun(cmd.Context())
	},
}

func dashboardRun(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var events <-chan storage.Event
	if w, ok := store.(storage.Watcher); ok {
		ch, err := w.Watch(ctx)
		if err != nil {
			logger.Warn("live reload disabled", zap.Error(err))
		} else {
			events = ch
		}
	}

	err := ui.RunDashboard(session, events, ui.DashboardConfig{
		Theme:    ui.ResolveTheme(appConfig.Theme),
		MaxWidth: appConfig.MaxWidth,
	})
	invalidatePromptCache()
	return err
}

// Execute runs the root command. Errors are printed to stderr; use ExitCode
// to map them to a process exit status.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

// ExitCode returns 2 for storage failures and 1 for everything else,
// including rejected check-ins and bad flags.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, storage.ErrStorage):
		return 2
	default:
		return 1
	}
}

func printError(w io.Writer, err error) {
	msg := err.Error()
	if errors.Is(err, storage.ErrValidation) {
		msg = strings.TrimPrefix(entry.ValidationMessage(err), storage.ErrValidation.Error()+": ")
	}
	fmt.Fprintln(w, "Error:", msg)
}

// usageError marks bad command input so it exits 1 like a rejected check-in.
func usageError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", storage.ErrValidation, fmt.Sprintf(format, args...))
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().StringVar(&storageBackend, "storage", "", "storage backend (blob|markdown|sqlite|postgres)")

	// Silence Cobra's built-in error and usage printing so we control stderr output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}
