package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// stripANSI drops colour and cursor sequences so assertions see plain text.
func stripANSI(s string) string {
	return ansi.Strip(s)
}

func countLines(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

// screenLines strips styling from a painted screen and splits it into rows.
func screenLines(s string) []string {
	return strings.Split(stripANSI(s), "\n")
}

// reflectionFixture is a typical evening check-in written in markdown.
const reflectionFixture = `# Evening Check-in

## What Helped

- [x] Morning walk
- [ ] Short nap
- [x] Called a friend

**Energy** dipped after lunch but *recovered* by dinner.`
