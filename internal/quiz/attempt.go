package quiz

import "errors"

// ErrIncomplete is returned when building an attempt before every question
// has been verified.
var ErrIncomplete = errors.New("not every answer verified")

// Attempt is an immutable snapshot of a finished attempt, safe to hand to
// a background submission. Reward fields are carried along for the local
// history record.
type Attempt struct {
	LessonID    int
	LessonTitle string
	RewardXP    int
	RewardCoins int
	Answers     map[string]string
}

// Attempt snapshots the current attempt for submission. It enforces the
// completion predicate: every question of the selected lesson must be in
// the verified set.
func (s *Session) Attempt() (Attempt, error) {
	if s.lesson == nil {
		return Attempt{}, ErrNoLesson
	}
	if !s.Complete() {
		return Attempt{}, ErrIncomplete
	}
	return Attempt{
		LessonID:    s.lesson.ID,
		LessonTitle: s.lesson.Title,
		RewardXP:    s.lesson.RewardXP,
		RewardCoins: s.lesson.RewardCoins,
		Answers:     s.Answers(),
	}, nil
}
