package components

import (
	"strings"
	"testing"
)

func TestProgressBarClampsPercent(t *testing.T) {
	over := NewProgressBar("XP", 1.8, true, 40).View()
	if !strings.Contains(over, "100%") {
		t.Errorf("expected overshoot clamped to 100%%, got %q", over)
	}
	if strings.Contains(over, "░") {
		t.Errorf("expected a full track at 100%%, got %q", over)
	}

	under := NewProgressBar("XP", -0.5, true, 40).View()
	if !strings.Contains(under, "0%") {
		t.Errorf("expected undershoot clamped to 0%%, got %q", under)
	}
	if strings.Contains(under, "█") {
		t.Errorf("expected an empty track at 0%%, got %q", under)
	}
}

func TestProgressBarTrackFillsProportionally(t *testing.T) {
	bar := NewProgressBar("", 0.5, false, 20).View()
	if got := strings.Count(bar, "█"); got != 10 {
		t.Errorf("expected 10 filled cells of 20, got %d", got)
	}
	if got := strings.Count(bar, "░"); got != 10 {
		t.Errorf("expected 10 empty cells of 20, got %d", got)
	}
}
