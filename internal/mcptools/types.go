package mcptools

import "github.com/chris-regnier/moodlog/internal/analysis"

// PatternsInput is the input schema for the get_patterns MCP tool.
type PatternsInput struct{}

// PatternsOutput is the output schema for the get_patterns MCP tool.
type PatternsOutput struct {
	Checkins           int                `json:"checkins"`
	EnergyTrends       map[string]float64 `json:"energy_trends"`
	MoodPatterns       map[string]int     `json:"mood_patterns"`
	TimeOfDay          analysis.TimeOfDay `json:"time_of_day"`
	MostProductiveTime string             `json:"most_productive_time,omitempty"`
	Insights           []string           `json:"insights"`
	Summary            []string           `json:"summary"`
}

// DayInput is the input schema for the get_day MCP tool.
type DayInput struct {
	Date string `json:"date" jsonschema:"Calendar day as YYYY-MM-DD"`
}

// DayOutput is the output schema for the get_day MCP tool.
type DayOutput struct {
	Found   bool          `json:"found"`
	Checkin *CheckinResult `json:"checkin,omitempty"`
}

// ListInput is the input schema for the list_checkins MCP tool.
type ListInput struct {
	StartDate string `json:"start_date,omitempty" jsonschema:"ISO date lower bound (inclusive)"`
	EndDate   string `json:"end_date,omitempty" jsonschema:"ISO date upper bound (inclusive)"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results"`
}

// ListOutput is the output schema for the list_checkins MCP tool.
type ListOutput struct {
	Checkins []CheckinResult `json:"checkins"`
}

// CheckinResult is the common output format for check-in MCP tools.
type CheckinResult struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	Mood      int    `json:"mood"`
	MoodLabel string `json:"mood_label"`
	Energy    int    `json:"energy"`
	Text      string `json:"text"`
}

// CreateCheckinInput is the input schema for the create_checkin MCP tool.
type CreateCheckinInput struct {
	Mood       string `json:"mood" jsonschema:"Mood 1-5 or one of down, neutral, good, very good, excellent"`
	Energy     *int   `json:"energy,omitempty" jsonschema:"Energy 0-10, defaults to 5"`
	Reflection string `json:"reflection" jsonschema:"What happened and how it felt"`
	Date       string `json:"date,omitempty" jsonschema:"Day (YYYY-MM-DD) or RFC 3339 timestamp, defaults to now"`
}

// CreateCheckinOutput is the output schema for the create_checkin MCP tool.
type CreateCheckinOutput struct {
	Checkin  CheckinResult `json:"checkin"`
	Insights []string      `json:"insights"`
}
