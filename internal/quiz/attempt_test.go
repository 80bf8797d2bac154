package quiz

import "testing"

func TestAttempt_RejectedUntilComplete(t *testing.T) {
	s := newSelected(t, "q1", "q2")
	mustVerify(t, s, "q1", "A")

	if _, err := s.Attempt(); err != ErrIncomplete {
		t.Errorf("got %v, want ErrIncomplete", err)
	}

	s.AutoAdvanceNow(t)
	mustVerify(t, s, "q2", "C")

	att, err := s.Attempt()
	if err != nil {
		t.Fatalf("Attempt: %v", err)
	}
	if att.LessonID != 1 {
		t.Errorf("lesson id: got %d", att.LessonID)
	}
	want := map[string]string{"q1": "A", "q2": "C"}
	if len(att.Answers) != len(want) {
		t.Fatalf("answers: got %v", att.Answers)
	}
	for k, v := range want {
		if att.Answers[k] != v {
			t.Errorf("answers[%s]: got %q, want %q", k, att.Answers[k], v)
		}
	}
}

func TestAttempt_SnapshotIsACopy(t *testing.T) {
	s := newSelected(t, "q1")
	mustVerify(t, s, "q1", "B")

	att, err := s.Attempt()
	if err != nil {
		t.Fatalf("Attempt: %v", err)
	}
	att.Answers["q1"] = "tampered"
	if s.Draft("q1") != "B" {
		t.Error("mutating the snapshot reached session state")
	}
}

func TestAttempt_NoLesson(t *testing.T) {
	s := New()
	if _, err := s.Attempt(); err != ErrNoLesson {
		t.Errorf("got %v, want ErrNoLesson", err)
	}
}
