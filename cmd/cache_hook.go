package cmd

import (
	"github.com/chris-regnier/moodlog/internal/shell"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// invalidateCachePostRun is a PostRunE hook that invalidates the prompt cache
// after commands that write check-ins (checkin, seed).
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	invalidatePromptCache()
	return nil
}

// invalidatePromptCache never fails the command; a stale prompt expires on
// its own TTL.
func invalidatePromptCache() {
	if appConfig == nil {
		return
	}
	if err := shell.InvalidateCache(appConfig.DataDir); err != nil {
		logger.Warn("prompt cache invalidation failed", zap.Error(err))
	}
}
