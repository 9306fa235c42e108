package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/moodlog/internal/config"
	"github.com/chris-regnier/moodlog/internal/entry"
)

// Theme holds resolved lipgloss colors for TUI rendering.
type Theme struct {
	Primary       lipgloss.Color
	Secondary     lipgloss.Color
	Accent        lipgloss.Color
	Muted         lipgloss.Color
	Danger        lipgloss.Color
	Positive      lipgloss.Color
	Background    lipgloss.Color
	MarkdownStyle string
}

const defaultPreset = "default-dark"

// Built-in presets.
var presets = map[string]Theme{
	"default-dark": {
		Primary: "15", Secondary: "243", Accent: "33", Muted: "241",
		Danger: "9", Positive: "10", Background: "235",
		MarkdownStyle: "dark",
	},
	"default-light": {
		Primary: "0", Secondary: "240", Accent: "27", Muted: "245",
		Danger: "1", Positive: "2", Background: "254",
		MarkdownStyle: "light",
	},
	"dracula": {
		Primary: "#F8F8F2", Secondary: "#6272A4", Accent: "#BD93F9", Muted: "#6272A4",
		Danger: "#FF5555", Positive: "#50FA7B", Background: "#282A36",
		MarkdownStyle: "dark",
	},
	"ayu-dark": {
		Primary: "#BFBDB6", Secondary: "#565B66", Accent: "#E6B450", Muted: "#565B66",
		Danger: "#D95757", Positive: "#AAD94C", Background: "#0D1017",
		MarkdownStyle: "dark",
	},
	"ayu-light": {
		Primary: "#575F66", Secondary: "#8A9199", Accent: "#F2AE49", Muted: "#8A9199",
		Danger: "#E65050", Positive: "#86B300", Background: "#FAFAFA",
		MarkdownStyle: "light",
	},
	"catppuccin-mocha": {
		Primary: "#CDD6F4", Secondary: "#585B70", Accent: "#CBA6F7", Muted: "#6C7086",
		Danger: "#F38BA8", Positive: "#A6E3A1", Background: "#1E1E2E",
		MarkdownStyle: "dark",
	},
	"catppuccin-latte": {
		Primary: "#4C4F69", Secondary: "#9CA0B0", Accent: "#8839EF", Muted: "#9CA0B0",
		Danger: "#D20F39", Positive: "#40A02B", Background: "#EFF1F5",
		MarkdownStyle: "light",
	},
	"gruvbox-dark": {
		Primary: "#EBDBB2", Secondary: "#665C54", Accent: "#FABD2F", Muted: "#928374",
		Danger: "#FB4934", Positive: "#B8BB26", Background: "#282828",
		MarkdownStyle: "dark",
	},
	"gruvbox-light": {
		Primary: "#3C3836", Secondary: "#A89984", Accent: "#D79921", Muted: "#928374",
		Danger: "#CC241D", Positive: "#98971A", Background: "#FBF1C7",
		MarkdownStyle: "light",
	},
}

// PresetNames returns the built-in preset names.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	return names
}

// ResolveTheme builds a Theme from config, starting with a preset
// and applying any explicit overrides.
func ResolveTheme(cfg config.ThemeConfig) Theme {
	theme, ok := presets[cfg.Preset]
	if !ok {
		theme = presets[defaultPreset]
	}

	override := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	override(&theme.Primary, cfg.Primary)
	override(&theme.Secondary, cfg.Secondary)
	override(&theme.Accent, cfg.Accent)
	override(&theme.Muted, cfg.Muted)
	override(&theme.Danger, cfg.Danger)
	override(&theme.Background, cfg.Background)
	if cfg.MarkdownStyle != "" {
		theme.MarkdownStyle = cfg.MarkdownStyle
	}

	return theme
}

func (t Theme) base() lipgloss.Style {
	return lipgloss.NewStyle().Background(t.Background)
}

// HelpStyle returns a lipgloss style for help/footer text.
func (t Theme) HelpStyle() lipgloss.Style {
	return t.base().Foreground(t.Muted)
}

// HeaderStyle returns a lipgloss style for headers.
func (t Theme) HeaderStyle() lipgloss.Style {
	return t.base().Bold(true).Foreground(t.Primary)
}

// AccentStyle returns a lipgloss style for accented/focused elements.
func (t Theme) AccentStyle() lipgloss.Style {
	return t.base().Foreground(t.Accent)
}

// DangerStyle returns a lipgloss style for validation errors.
func (t Theme) DangerStyle() lipgloss.Style {
	return t.base().Foreground(t.Danger)
}

// PositiveStyle returns a lipgloss style for confirmations.
func (t Theme) PositiveStyle() lipgloss.Style {
	return t.base().Foreground(t.Positive)
}

// MoodStyle colors a mood from Danger (down) to Positive (excellent).
func (t Theme) MoodStyle(m entry.Mood) lipgloss.Style {
	switch m {
	case entry.MoodDown:
		return t.base().Foreground(t.Danger)
	case entry.MoodNeutral:
		return t.base().Foreground(t.Muted)
	case entry.MoodGood:
		return t.base().Foreground(t.Primary)
	case entry.MoodVeryGood:
		return t.base().Foreground(t.Accent)
	case entry.MoodExcellent:
		return t.base().Foreground(t.Positive)
	}
	return t.base().Foreground(t.Secondary)
}

// EnergyStyle colors an energy bar: low is Danger, high is Positive.
func (t Theme) EnergyStyle(energy int) lipgloss.Style {
	switch {
	case energy < 4:
		return t.base().Foreground(t.Danger)
	case energy > 7:
		return t.base().Foreground(t.Positive)
	}
	return t.base().Foreground(t.Accent)
}

// BorderStyle returns a lipgloss style with a rounded border using secondary color.
func (t Theme) BorderStyle() lipgloss.Style {
	return t.base().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		BorderBackground(t.Background).
		Foreground(t.Primary)
}

// FocusedBorderStyle is BorderStyle with the accent color on the border.
func (t Theme) FocusedBorderStyle() lipgloss.Style {
	return t.BorderStyle().BorderForeground(t.Accent)
}

// ViewPaneStyle returns a lipgloss style for content view panes with themed background.
func (t Theme) ViewPaneStyle() lipgloss.Style {
	return t.base().Foreground(t.Primary)
}

// FullScreenStyle fills a width x height block with the theme background.
func (t Theme) FullScreenStyle(width, height int) lipgloss.Style {
	return t.ViewPaneStyle().Width(width).Height(height)
}

// bgEscapeCode returns the raw ANSI escape sequence to set the theme's
// background color, for use with terminal control codes like \x1b[K.
func (t Theme) bgEscapeCode() string {
	s := string(t.Background)
	if strings.HasPrefix(s, "#") && len(s) == 7 {
		var r, g, b int
		fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b)
		return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
	}
	return "\x1b[48;5;" + s + "m"
}

// PaintScreen pads every line of content to termWidth, centering it when
// contentWidth is narrower, and fills down to termHeight with the theme
// background. Each line ends with \x1b[K so the background reaches the right
// edge even when lipgloss under-measures a line.
func (t Theme) PaintScreen(content string, termWidth, termHeight, contentWidth int) string {
	bgPad := t.base()
	clearEOL := t.bgEscapeCode() + "\x1b[K"

	leftPad := 0
	if contentWidth > 0 && contentWidth < termWidth {
		leftPad = (termWidth - contentWidth) / 2
	}
	leftStr := ""
	if leftPad > 0 {
		leftStr = bgPad.Render(strings.Repeat(" ", leftPad))
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		rightPad := max(termWidth-leftPad-lipgloss.Width(line), 0)

		var b strings.Builder
		b.WriteString(leftStr)
		b.WriteString(line)
		if rightPad > 0 {
			b.WriteString(bgPad.Render(strings.Repeat(" ", rightPad)))
		}
		b.WriteString(clearEOL)
		lines[i] = b.String()
	}

	emptyLine := bgPad.Render(strings.Repeat(" ", termWidth)) + clearEOL
	for len(lines) < termHeight {
		lines = append(lines, emptyLine)
	}

	return strings.Join(lines[:termHeight], "\n")
}

// NewList creates a list.Model with delegate and chrome styles derived from the theme.
func (t Theme) NewList(items []list.Item, width, height int) list.Model {
	l := list.New(items, t.ListDelegate(), width, height)
	l.Styles = t.ListStyles()
	return l
}

// ListDelegate returns a list.DefaultDelegate with item styles derived from the theme.
func (t Theme) ListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.NormalTitle = t.base().Foreground(t.Primary).Padding(0, 0, 0, 2)
	d.Styles.NormalDesc = d.Styles.NormalTitle.Foreground(t.Muted)
	d.Styles.SelectedTitle = t.base().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(t.Accent).
		Foreground(t.Accent).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(t.Secondary)
	d.Styles.DimmedTitle = t.base().Foreground(t.Muted).Padding(0, 0, 0, 2)
	d.Styles.DimmedDesc = d.Styles.DimmedTitle
	return d
}

// ListStyles returns list.Styles (chrome around the list) derived from the theme.
func (t Theme) ListStyles() list.Styles {
	s := list.DefaultStyles()
	s.Title = t.HeaderStyle()
	s.TitleBar = t.base()
	s.FilterPrompt = t.AccentStyle()
	s.FilterCursor = t.AccentStyle()
	s.PaginationStyle = t.HelpStyle()
	s.HelpStyle = t.HelpStyle()
	s.ActivePaginationDot = t.AccentStyle()
	s.InactivePaginationDot = t.HelpStyle()
	s.NoItems = t.HelpStyle()
	return s
}
