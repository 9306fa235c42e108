package mcptools

import (
	"context"

	"github.com/chris-regnier/moodlog/internal/analysis"
	"github.com/chris-regnier/moodlog/internal/journal"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PatternsHandler returns the handler function for the get_patterns MCP tool.
func PatternsHandler(session *journal.Session) func(ctx context.Context, req *mcp.CallToolRequest, input PatternsInput) (*mcp.CallToolResult, PatternsOutput, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PatternsInput) (*mcp.CallToolResult, PatternsOutput, error) {
		state, err := session.Load(ctx)
		if err != nil {
			return nil, PatternsOutput{}, err
		}
		r := state.Report

		out := PatternsOutput{
			Checkins:     len(state.Entries),
			EnergyTrends: make(map[string]float64, len(r.EnergyTrends)),
			MoodPatterns: make(map[string]int, len(r.MoodPatterns)),
			TimeOfDay:    r.TimeOfDay,
			Insights:     append([]string{}, r.Insights...),
			Summary:      analysis.Summary(r),
		}
		for i, avg := range r.EnergyTrends {
			out.EnergyTrends[analysis.WeekdayName(i)] = avg
		}
		for m, n := range r.MoodPatterns {
			out.MoodPatterns[m.Description()] += n
		}
		if p, ok := analysis.MostProductiveTime(r.TimeOfDay); ok {
			out.MostProductiveTime = string(p)
		}
		return nil, out, nil
	}
}
