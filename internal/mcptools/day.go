package mcptools

import (
	"context"
	"fmt"

	"github.com/chris-regnier/moodlog/internal/calendar"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DayHandler returns the handler function for the get_day MCP tool. Like the
// calendar, a day with several check-ins reports the first one stored.
func DayHandler(session *journal.Session) func(ctx context.Context, req *mcp.CallToolRequest, input DayInput) (*mcp.CallToolResult, DayOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input DayInput) (*mcp.CallToolResult, DayOutput, error) {
		day, err := parseDate(input.Date)
		if err != nil {
			return nil, DayOutput{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", input.Date)
		}
		state, err := session.Load(ctx)
		if err != nil {
			return nil, DayOutput{}, err
		}
		e, ok := calendar.DayEntry(state.Entries, day)
		if !ok {
			return nil, DayOutput{Found: false}, nil
		}
		r := toResult(e)
		return nil, DayOutput{Found: true, Checkin: &r}, nil
	}
}
