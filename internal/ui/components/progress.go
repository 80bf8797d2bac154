package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/ui/theme"
)

// ProgressBar renders a single-line horizontal gauge, used for the pet's
// XP progress within the current level band.
type ProgressBar struct {
	Label       string
	Percent     float64 // 0..1, clamped on render
	ShowPercent bool
	Width       int // total width including label and percent readout
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the gauge as label, block-glyph track, and optional
// percentage readout.
func (p ProgressBar) View() string {
	var b strings.Builder

	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	track := p.Width - lipgloss.Width(b.String())
	if p.ShowPercent {
		track -= 6 // room for "  100%"
	}
	if track < 4 {
		track = 4
	}

	pct := clamp01(p.Percent)
	filled := int(pct * float64(track))

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).
		Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).
		Render(strings.Repeat("░", track-filled)))

	if p.ShowPercent {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(pct*100))))
	}

	return b.String()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
