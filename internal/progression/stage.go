package progression

// stageMilestones maps the level at which each pet stage unlocks.
// Mirrored from the server; ordered ascending.
var stageMilestones = []struct {
	level int
	stage string
}{
	{1, "egg"},
	{3, "baby"},
	{5, "teen"},
	{7, "adult"},
}

// StageForLevel returns the pet stage a given level corresponds to.
// The server supplies the stage alongside the profile; this exists for
// level-up previews and must stay in lockstep with the server's mapping.
func StageForLevel(level int) string {
	stage := "egg"
	for _, m := range stageMilestones {
		if level >= m.level {
			stage = m.stage
		}
	}
	return stage
}
