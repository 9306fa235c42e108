package analysis

import "fmt"

// Empty-state copy shown before the first check-in.
const (
	EmptyPatternsMessage = "Start adding daily check-ins to see your patterns!"
	WelcomeMessage       = "Welcome to your Digital Wellness journey! Complete your first check-in to start seeing personalized insights."
)

// MostProductiveTime picks the busiest bucket. Ties go to the earlier bucket
// in Periods order. Returns false when no check-in was bucketed.
func MostProductiveTime(t TimeOfDay) (Period, bool) {
	if t.Total() == 0 {
		return "", false
	}
	best := Periods[0]
	for _, p := range Periods[1:] {
		if t.Count(p) > t.Count(best) {
			best = p
		}
	}
	return best, true
}

// Summary returns the dashboard summary: a heading line followed by tips.
// A report without insights gets the welcome message instead.
func Summary(r Report) []string {
	if len(r.Insights) == 0 {
		return []string{WelcomeMessage}
	}

	lines := []string{"Based on your recent check-ins:"}
	if p, ok := MostProductiveTime(r.TimeOfDay); ok {
		lines = append(lines, fmt.Sprintf("You tend to be most engaged during %s.", p))
	}
	return append(lines,
		"Consider scheduling focused work during your high-energy periods.",
		"Take mindful breaks when your energy dips to maintain productivity.",
	)
}
