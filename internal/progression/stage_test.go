package progression

import "testing"

func TestStageForLevel(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{1, "egg"},
		{2, "egg"},
		{3, "baby"},
		{4, "baby"},
		{5, "teen"},
		{6, "teen"},
		{7, "adult"},
		{8, "adult"},
	}
	for _, c := range cases {
		if got := StageForLevel(c.level); got != c.want {
			t.Errorf("StageForLevel(%d): got %q, want %q", c.level, got, c.want)
		}
	}
}

func TestStageForLevel_BelowRange(t *testing.T) {
	if got := StageForLevel(0); got != "egg" {
		t.Errorf("got %q, want egg", got)
	}
}
