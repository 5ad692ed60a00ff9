package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ffff"))

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Selected = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ff88ff"))

	MetricValue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	MetricLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	KeyHint = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00aaaa")).
		Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#ffffff")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#444466"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)

	// One style per attractor count, cycled for larger counts.
	CountStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("#00ff88")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ffcc00")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("#ff00ff")),
	}
)

// CountStyle returns the style for a count level; 0 is the uncovered style.
func CountStyle(attractors int) lipgloss.Style {
	if attractors <= 0 {
		return Subtle
	}
	return CountStyles[(attractors-1)%len(CountStyles)]
}

// ShareBar renders share (0..1) as a bar of the given width.
func ShareBar(share float64, width int, style lipgloss.Style) string {
	filled := int(share*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled)) + Subtle.Render(strings.Repeat("░", width-filled))
}

// Strip renders one cell per sweep value, colored by attractor count.
func Strip(counts []int) string {
	var b strings.Builder
	for _, c := range counts {
		if c <= 0 {
			b.WriteString(Subtle.Render("·"))
			continue
		}
		b.WriteString(CountStyle(c).Render("█"))
	}
	return b.String()
}

func Separator(width int) string {
	return Subtle.Render(strings.Repeat("─", width))
}

func hints(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, KeyHint.Render(pairs[i])+Subtle.Render(" "+pairs[i+1]))
	}
	return strings.Join(parts, "  ")
}
