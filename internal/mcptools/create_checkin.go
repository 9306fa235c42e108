package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/chris-regnier/moodlog/internal/shell"
	"github.com/chris-regnier/moodlog/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// CreateCheckinHandler returns the handler function for the create_checkin MCP tool.
// Rejected submissions come back as tool errors carrying the user-facing message.
func CreateCheckinHandler(session *journal.Session, dataDir string, log *zap.Logger) func(ctx context.Context, req *mcp.CallToolRequest, input CreateCheckinInput) (*mcp.CallToolResult, CreateCheckinOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input CreateCheckinInput) (*mcp.CallToolResult, CreateCheckinOutput, error) {
		now := time.Now()
		sub := entry.Submission{Energy: input.Energy, Text: input.Reflection}

		if input.Mood != "" {
			m, err := entry.ParseMood(input.Mood)
			if err != nil {
				return nil, CreateCheckinOutput{}, err
			}
			sub.Mood = m
		}
		if input.Date != "" {
			d, err := submissionDate(input.Date, now)
			if err != nil {
				return nil, CreateCheckinOutput{}, err
			}
			sub.Date = &d
		}

		state, err := session.Load(ctx)
		if err != nil {
			return nil, CreateCheckinOutput{}, err
		}
		next, e, err := session.Submit(ctx, state, sub, now)
		if errors.Is(err, storage.ErrValidation) {
			return nil, CreateCheckinOutput{}, errors.New(entry.ValidationMessage(err))
		}
		if err != nil {
			return nil, CreateCheckinOutput{}, err
		}

		// Invalidate shell prompt cache (best-effort)
		if dataDir != "" {
			if err := shell.InvalidateCache(dataDir); err != nil {
				log.Warn("prompt cache invalidation failed", zap.Error(err))
			}
		}

		return nil, CreateCheckinOutput{
			Checkin:  toResult(e),
			Insights: append([]string{}, next.Report.Insights...),
		}, nil
	}
}

// submissionDate accepts a bare day (noon, or now for today) or a full timestamp.
func submissionDate(s string, now time.Time) (time.Time, error) {
	if day, err := parseDate(s); err == nil {
		return calendar.CheckinTime(day, now), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}
