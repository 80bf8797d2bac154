package progression

import "math"

// LevelThresholds is the ascending table of cumulative-XP floors, index 0
// being level 1. It mirrors the server's table and must change in lockstep
// with it; the server remains authoritative for the level itself, this table
// only drives the client-side bar math.
var LevelThresholds = []int{0, 100, 250, 450, 700, 1000, 1400, 1850}

// Projection is the derived view of a total-XP counter against a threshold
// table.
type Projection struct {
	// Level is 1-based, capped at the last defined level.
	Level int

	// CurrentLevelXP is XP accumulated past the current level's floor.
	CurrentLevelXP int

	// XPNeeded is the width of the current level band (0 at max level).
	XPNeeded int

	// Percent is the bar fill toward the next level, always within [0, 100].
	Percent int

	// IsMaxLevel is true when Level is the last defined level.
	IsMaxLevel bool
}

// Project maps totalXP into a Projection over thresholds. It is pure: no
// state, no side effects, identical output for identical input.
func Project(totalXP int, thresholds []int) Projection {
	if len(thresholds) == 0 {
		return Projection{Level: 1, Percent: 100, IsMaxLevel: true}
	}

	level := 1
	for i, floor := range thresholds {
		if totalXP >= floor {
			level = i + 1
		}
	}

	if level >= len(thresholds) {
		return Projection{
			Level:          len(thresholds),
			CurrentLevelXP: clampMin(totalXP-thresholds[len(thresholds)-1], 0),
			XPNeeded:       0,
			Percent:        100,
			IsMaxLevel:     true,
		}
	}

	current := clampMin(totalXP-thresholds[level-1], 0)
	needed := thresholds[level] - thresholds[level-1]
	percent := int(math.Round(float64(current) / float64(needed) * 100))
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return Projection{
		Level:          level,
		CurrentLevelXP: current,
		XPNeeded:       needed,
		Percent:        percent,
	}
}

func clampMin(v, min int) int {
	if v < min {
		return min
	}
	return v
}
