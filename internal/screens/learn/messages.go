package learn

import (
	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/quiz"
)

// pageLoadedMsg is sent when a lesson page has been fetched.
type pageLoadedMsg struct {
	Page    *api.LessonPage
	PageNum int
	Err     error
}

// verdictMsg carries the server's judgment for a checked answer. The tag
// lets the session discard verdicts for an abandoned attempt.
type verdictMsg struct {
	Tag     quiz.Tag
	Verdict *api.Verdict
	Err     error
}

// advanceMsg fires after the post-correct pause to move the question
// pointer forward.
type advanceMsg struct {
	Tag quiz.Tag
}

// submitDoneMsg is sent when a lesson submission returns.
type submitDoneMsg struct {
	LessonID int
	Result   *api.SubmitResult
	Err      error
}

// walletRefreshedMsg is sent after a submission once the fresh profile
// snapshot has been fetched.
type walletRefreshedMsg struct {
	Profile *api.ProfileSnapshot
	Err     error
}
