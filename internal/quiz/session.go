// Package quiz owns the in-progress lesson attempt: the selected lesson,
// the question pointer, per-question answer drafts, the set of answers the
// server has confirmed correct, and the transient feedback line. It is pure
// state; network calls happen outside and their results are folded back in
// with a Tag so late arrivals for an abandoned attempt are discarded.
package quiz

import (
	"errors"
	"fmt"
	"time"

	"github.com/investipet/investipet/internal/api"
)

// AdvanceDelay is the pause after a correct answer before the question
// pointer auto-advances. Pacing only, not a correctness requirement.
const AdvanceDelay = 650 * time.Millisecond

var (
	// ErrUnknownLesson is returned when selecting a lesson that is not on
	// the currently loaded page.
	ErrUnknownLesson = errors.New("lesson not on current page")

	// ErrNoLesson is returned for transitions that require a selected lesson.
	ErrNoLesson = errors.New("no lesson selected")

	// ErrAnswerLocked is returned when redrafting an answer the server has
	// already confirmed correct.
	ErrAnswerLocked = errors.New("answer already verified")

	// ErrNoDraft is returned when checking a question without a drafted answer.
	ErrNoDraft = errors.New("no answer drafted")

	// ErrCheckInFlight is returned when a check is already awaiting a verdict.
	ErrCheckInFlight = errors.New("check already in flight")
)

// Phase is the coarse state of the attempt.
type Phase int

const (
	PhaseNoLesson Phase = iota // nothing selected
	PhaseQuestion              // answering questions
	PhaseVerifying             // a check is awaiting its verdict
	PhaseComplete              // every question verified; submission enabled
)

// Feedback is the transient verdict line shown under the question.
type Feedback struct {
	Correct bool
	Text    string
}

// Tag identifies which attempt and question an async result belongs to.
// Results carrying a stale tag are discarded.
type Tag struct {
	Epoch      uint64
	LessonID   int
	QuestionID string
}

// CheckRequest is what the caller must send to the server for a begun check.
type CheckRequest struct {
	LessonID   int
	QuestionID string
	Answer     string
	Tag        Tag
}

// Session is the quiz attempt state machine.
type Session struct {
	page          *api.LessonPage
	lesson        *api.Lesson
	questionIndex int
	drafts        map[string]string
	verified      map[string]bool
	feedback      *Feedback
	checking      bool
	checkingQID   string

	// epoch increments whenever attempt state is reset; it invalidates
	// every Tag handed out before the reset.
	epoch uint64
}

// New creates an empty session with no lesson selected.
func New() *Session {
	return &Session{
		drafts:   make(map[string]string),
		verified: make(map[string]bool),
	}
}

// SetPage replaces the loaded lesson page. If the selected lesson is no
// longer present, the attempt resets to the no-lesson state.
func (s *Session) SetPage(page *api.LessonPage) {
	s.page = page
	if s.lesson == nil {
		return
	}
	if page == nil || page.Lesson(s.lesson.ID) == nil {
		s.lesson = nil
		s.resetAttempt()
		return
	}
	// Same lesson, fresh server copy (completion flag / score may have
	// changed). The in-progress attempt state is kept.
	s.lesson = page.Lesson(s.lesson.ID)
}

// SelectLesson starts a fresh attempt on the given lesson. Drafts, the
// verified set, the question pointer and feedback are all reset; any
// in-flight check or scheduled advance becomes stale.
func (s *Session) SelectLesson(id int) error {
	if s.page == nil {
		return ErrUnknownLesson
	}
	lesson := s.page.Lesson(id)
	if lesson == nil {
		return ErrUnknownLesson
	}
	s.lesson = lesson
	s.resetAttempt()
	return nil
}

// ResetAttempt discards the current attempt's drafts and verified set while
// keeping the lesson selected. Used after a successful submission.
func (s *Session) ResetAttempt() {
	s.resetAttempt()
}

// Deselect abandons the attempt and returns to the no-lesson state. Any
// in-flight check result for the abandoned attempt will be discarded.
func (s *Session) Deselect() {
	s.lesson = nil
	s.resetAttempt()
}

func (s *Session) resetAttempt() {
	s.questionIndex = 0
	s.drafts = make(map[string]string)
	s.verified = make(map[string]bool)
	s.feedback = nil
	s.checking = false
	s.checkingQID = ""
	s.epoch++
}

// ChooseOption drafts an answer for a question. A verified answer is
// locked; redrafting it is rejected. Overwrites any prior draft and clears
// feedback.
func (s *Session) ChooseOption(questionID, option string) error {
	if s.lesson == nil {
		return ErrNoLesson
	}
	if s.lesson.Question(questionID) == nil {
		return fmt.Errorf("question %q not in lesson %d", questionID, s.lesson.ID)
	}
	if s.verified[questionID] {
		return ErrAnswerLocked
	}
	s.drafts[questionID] = option
	s.feedback = nil
	return nil
}

// BeginCheck starts verification of the current question's draft. The
// caller sends the returned CheckRequest to the server and folds the result
// back with FoldVerdict or FoldCheckError. A second BeginCheck while one is
// in flight is rejected without state change.
func (s *Session) BeginCheck() (CheckRequest, error) {
	if s.lesson == nil {
		return CheckRequest{}, ErrNoLesson
	}
	if s.checking {
		return CheckRequest{}, ErrCheckInFlight
	}
	q := s.Current()
	if q == nil {
		return CheckRequest{}, ErrNoLesson
	}
	if s.verified[q.ID] {
		return CheckRequest{}, ErrAnswerLocked
	}
	draft, ok := s.drafts[q.ID]
	if !ok || draft == "" {
		return CheckRequest{}, ErrNoDraft
	}

	s.checking = true
	s.checkingQID = q.ID
	return CheckRequest{
		LessonID:   s.lesson.ID,
		QuestionID: q.ID,
		Answer:     draft,
		Tag:        Tag{Epoch: s.epoch, LessonID: s.lesson.ID, QuestionID: q.ID},
	}, nil
}

// FoldVerdict applies a server verdict to the attempt. A verdict whose tag
// no longer matches the current attempt is discarded. Returns whether the
// verdict was applied and whether an auto-advance should be scheduled.
func (s *Session) FoldVerdict(tag Tag, v *api.Verdict) (applied, scheduleAdvance bool) {
	if !s.tagCurrent(tag) {
		return false, false
	}
	s.checking = false
	s.checkingQID = ""

	if v.Correct {
		s.verified[tag.QuestionID] = true
		s.feedback = &Feedback{Correct: true, Text: "Correct! Great job."}
		last := s.questionIndex >= len(s.lesson.Quiz)-1
		return true, !last
	}

	s.feedback = &Feedback{Correct: false, Text: fmt.Sprintf("Not quite. Correct answer: %s", v.CorrectAnswer)}
	return true, false
}

// FoldCheckError clears the in-flight check after a failed verification
// call. Drafts and the verified set are untouched; the caller surfaces the
// error itself (a transport failure is not a "wrong answer").
func (s *Session) FoldCheckError(tag Tag) bool {
	if !s.tagCurrent(tag) {
		return false
	}
	s.checking = false
	s.checkingQID = ""
	return true
}

// AutoAdvance moves to the next question if the scheduled advance is still
// current. Clears feedback on advance.
func (s *Session) AutoAdvance(tag Tag) bool {
	if !s.tagCurrent(tag) {
		return false
	}
	if s.questionIndex >= len(s.lesson.Quiz)-1 {
		return false
	}
	s.questionIndex++
	s.feedback = nil
	return true
}

func (s *Session) tagCurrent(tag Tag) bool {
	return s.lesson != nil && tag.Epoch == s.epoch && tag.LessonID == s.lesson.ID
}

// Next moves the question pointer forward. At the last question it is a
// no-op, not an error.
func (s *Session) Next() {
	if s.lesson == nil || s.questionIndex >= len(s.lesson.Quiz)-1 {
		return
	}
	s.questionIndex++
	s.feedback = nil
}

// Previous moves the question pointer back. At the first question it is a
// no-op, not an error.
func (s *Session) Previous() {
	if s.lesson == nil || s.questionIndex <= 0 {
		return
	}
	s.questionIndex--
	s.feedback = nil
}

// Complete reports the completion predicate: every question of the selected
// lesson independently confirmed correct. This, not "all questions
// visited", gates submission.
func (s *Session) Complete() bool {
	if s.lesson == nil || len(s.lesson.Quiz) == 0 {
		return false
	}
	for _, q := range s.lesson.Quiz {
		if !s.verified[q.ID] {
			return false
		}
	}
	return true
}

// Answers returns a copy of the drafted answers, keyed by question id.
func (s *Session) Answers() map[string]string {
	out := make(map[string]string, len(s.drafts))
	for k, v := range s.drafts {
		out[k] = v
	}
	return out
}

// Phase derives the coarse attempt state.
func (s *Session) Phase() Phase {
	switch {
	case s.lesson == nil:
		return PhaseNoLesson
	case s.checking:
		return PhaseVerifying
	case s.Complete():
		return PhaseComplete
	default:
		return PhaseQuestion
	}
}

// Page returns the loaded lesson page (nil before the first fetch).
func (s *Session) Page() *api.LessonPage { return s.page }

// Lesson returns the selected lesson, or nil.
func (s *Session) Lesson() *api.Lesson { return s.lesson }

// Current returns the question under the pointer, or nil.
func (s *Session) Current() *api.Question {
	if s.lesson == nil || s.questionIndex < 0 || s.questionIndex >= len(s.lesson.Quiz) {
		return nil
	}
	return &s.lesson.Quiz[s.questionIndex]
}

// QuestionIndex returns the current question pointer.
func (s *Session) QuestionIndex() int { return s.questionIndex }

// Draft returns the drafted answer for a question ("" if none).
func (s *Session) Draft(questionID string) string { return s.drafts[questionID] }

// IsVerified reports whether a question's answer has been confirmed correct.
func (s *Session) IsVerified(questionID string) bool { return s.verified[questionID] }

// VerifiedCount returns the size of the verified set.
func (s *Session) VerifiedCount() int { return len(s.verified) }

// Checking reports whether a check is awaiting its verdict.
func (s *Session) Checking() bool { return s.checking }

// Feedback returns the transient feedback line, or nil.
func (s *Session) Feedback() *Feedback { return s.feedback }
