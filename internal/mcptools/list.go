package mcptools

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/chris-regnier/moodlog/internal/entry"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ListHandler returns the handler function for the list_checkins MCP tool.
// Undated check-ins are only listed when no range is given.
func ListHandler(session *journal.Session) func(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListInput) (*mcp.CallToolResult, ListOutput, error) {
		// [start, end) with end the midnight after EndDate
		var start, end time.Time
		if input.StartDate != "" {
			t, err := parseDate(input.StartDate)
			if err != nil {
				return nil, ListOutput{}, fmt.Errorf("invalid start_date %q: expected YYYY-MM-DD", input.StartDate)
			}
			start = t
		}
		if input.EndDate != "" {
			t, err := parseDate(input.EndDate)
			if err != nil {
				return nil, ListOutput{}, fmt.Errorf("invalid end_date %q: expected YYYY-MM-DD", input.EndDate)
			}
			end = t.AddDate(0, 0, 1)
		}

		state, err := session.Load(ctx)
		if err != nil {
			return nil, ListOutput{}, err
		}

		var matched []entry.Entry
		for _, e := range state.Entries {
			if !start.IsZero() || !end.IsZero() {
				if !e.HasValidDate() {
					continue
				}
				if (!start.IsZero() && e.Date.Before(start)) || (!end.IsZero() && !e.Date.Before(end)) {
					continue
				}
			}
			matched = append(matched, e)
		}
		sort.SliceStable(matched, func(i, j int) bool {
			a, b := matched[i], matched[j]
			if !a.HasValidDate() || !b.HasValidDate() {
				return a.HasValidDate() && !b.HasValidDate()
			}
			return a.Date.After(b.Date)
		})
		if input.Limit > 0 && len(matched) > input.Limit {
			matched = matched[:input.Limit]
		}

		results := make([]CheckinResult, 0, len(matched))
		for _, e := range matched {
			results = append(results, toResult(e))
		}
		return nil, ListOutput{Checkins: results}, nil
	}
}
