package cmd

import (
	"context"
	"fmt"

	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/chris-regnier/moodlog/internal/storage/blob"
	"github.com/chris-regnier/moodlog/internal/storage/markdown"
	"github.com/chris-regnier/moodlog/internal/storage/postgres"
	"github.com/chris-regnier/moodlog/internal/storage/sqlite"
	"go.uber.org/zap"
)

// openStore initializes the backend named by cfg.Storage.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (storage.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch cfg.Storage {
	case "", "blob":
		s, err := blob.New(cfg.DataDir, log)
		if err != nil {
			return nil, fmt.Errorf("initializing blob storage: %w", err)
		}
		return s, nil
	case "markdown":
		s, err := markdown.New(cfg.DataDir, log)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(cfg.DataDir, log)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	case "postgres":
		s, err := postgres.New(ctx, cfg.PostgresDSN, log)
		if err != nil {
			return nil, fmt.Errorf("initializing postgres storage: %w", err)
		}
		return s, nil
	default:
		return nil, usageError("unknown storage backend: %s", cfg.Storage)
	}
}
