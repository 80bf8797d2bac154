package learn

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/cache"
	"github.com/investipet/investipet/internal/progression"
	"github.com/investipet/investipet/internal/quiz"
	"github.com/investipet/investipet/internal/router"
	"github.com/investipet/investipet/internal/screen"
	"github.com/investipet/investipet/internal/submit"
	"github.com/investipet/investipet/internal/ui/layout"
)

// LearnScreen drives a quiz attempt: browse lessons, answer questions one
// at a time with server-side checking, and submit once every answer has
// been confirmed correct.
type LearnScreen struct {
	client      *api.Client
	lessons     *cache.Store
	coordinator *submit.Coordinator

	session    *quiz.Session
	pageNum    int
	cursor     int  // lesson list cursor
	optCursor  int  // option cursor within the current question
	reading    bool // showing the lesson body before the quiz
	loading    bool
	submitting bool
	result     *api.SubmitResult
	rewardXP   int
	rewardCoin int
	errMsg     string

	// Last known profile values, used to spot a level or stage change
	// when the post-submission snapshot arrives.
	prevXP    int
	prevLevel int
	prevStage string
	levelUp   int    // new level to announce on the result overlay, 0 if none
	stageUp   string // new stage to announce, empty if unchanged
}

var _ screen.Screen = (*LearnScreen)(nil)
var _ screen.KeyHintProvider = (*LearnScreen)(nil)

// New creates a new LearnScreen.
func New(client *api.Client, lessons *cache.Store, coordinator *submit.Coordinator) *LearnScreen {
	return &LearnScreen{
		client:      client,
		lessons:     lessons,
		coordinator: coordinator,
		session:     quiz.New(),
		pageNum:     1,
		loading:     true,
	}
}

func (s *LearnScreen) Init() tea.Cmd {
	return tea.Batch(s.loadPage(s.pageNum), s.refreshWallet())
}

func (s *LearnScreen) Title() string {
	return "Learn Hub"
}

func (s *LearnScreen) KeyHints() []layout.KeyHint {
	if s.result != nil {
		return []layout.KeyHint{{Key: "any key", Description: "Back to lessons"}}
	}
	if s.session.Lesson() == nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Open lesson"},
			{Key: "←→", Description: "Page"},
			{Key: "Esc", Description: "Back"},
		}
	}
	if s.reading {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start quiz"},
			{Key: "Esc", Description: "Back"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Space", Description: "Choose"},
		{Key: "Enter", Description: "Check"},
		{Key: "←→", Description: "Question"},
	}
	if s.session.Complete() {
		hints[1] = layout.KeyHint{Key: "Enter", Description: "Submit lesson"}
	}
	return hints
}

// loadPage fetches a lesson page through the cache.
func (s *LearnScreen) loadPage(page int) tea.Cmd {
	return func() tea.Msg {
		p, err := s.lessons.Lessons(context.Background(), page)
		return pageLoadedMsg{Page: p, PageNum: page, Err: err}
	}
}

func (s *LearnScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		return s.handlePageLoaded(msg)
	case verdictMsg:
		return s.handleVerdict(msg)
	case advanceMsg:
		s.session.AutoAdvance(msg.Tag)
		return s, nil
	case submitDoneMsg:
		return s.handleSubmitDone(msg)
	case walletRefreshedMsg:
		return s.handleWalletRefreshed(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *LearnScreen) handlePageLoaded(msg pageLoadedMsg) (screen.Screen, tea.Cmd) {
	s.loading = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.errMsg = ""
	s.pageNum = msg.PageNum
	s.session.SetPage(msg.Page)
	if s.cursor >= len(msg.Page.Items) {
		s.cursor = 0
	}
	return s, nil
}

func (s *LearnScreen) handleVerdict(msg verdictMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if s.session.FoldCheckError(msg.Tag) {
			s.errMsg = "Check failed: " + msg.Err.Error()
		}
		return s, nil
	}

	applied, schedule := s.session.FoldVerdict(msg.Tag, msg.Verdict)
	if !applied {
		return s, nil
	}
	s.errMsg = ""
	if !schedule {
		return s, nil
	}

	tag := msg.Tag
	return s, tea.Tick(quiz.AdvanceDelay, func(time.Time) tea.Msg {
		return advanceMsg{Tag: tag}
	})
}

func (s *LearnScreen) handleSubmitDone(msg submitDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		if errors.Is(msg.Err, submit.ErrInFlight) {
			// The earlier submission is still running; its result will arrive.
			return s, nil
		}
		s.errMsg = "Submission failed: " + msg.Err.Error()
		return s, nil
	}

	s.result = msg.Result
	s.errMsg = ""

	// Preview the level change locally so the overlay never shows late.
	// The refreshed snapshot below carries the server's answer and wins.
	if msg.Result.Completed && s.prevStage != "" {
		next := progression.Project(s.prevXP+s.rewardXP, progression.LevelThresholds).Level
		if next > s.prevLevel {
			s.levelUp = next
			if st := progression.StageForLevel(next); st != s.prevStage {
				s.stageUp = st
			}
		}
	}

	// Balances changed server-side; fetch the reconciled snapshot.
	return s, s.refreshWallet()
}

// refreshWallet fetches the profile snapshot through the cache.
func (s *LearnScreen) refreshWallet() tea.Cmd {
	return func() tea.Msg {
		profile, err := s.lessons.Me(context.Background())
		return walletRefreshedMsg{Profile: profile, Err: err}
	}
}

func (s *LearnScreen) handleWalletRefreshed(msg walletRefreshedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil || msg.Profile == nil {
		return s, nil
	}
	p := msg.Profile

	// While the result overlay is up, reconcile the preview against the
	// server's level and stage. The server decides both.
	if s.result != nil && s.prevStage != "" {
		if p.Pet.Level > s.prevLevel {
			s.levelUp = p.Pet.Level
		} else {
			s.levelUp = 0
		}
		if p.Pet.Stage != s.prevStage {
			s.stageUp = p.Pet.Stage
		} else {
			s.stageUp = ""
		}
	}

	s.prevXP = p.XPTotal
	s.prevLevel = p.Pet.Level
	s.prevStage = p.Pet.Stage

	return s, func() tea.Msg {
		return screen.WalletUpdatedMsg{Coins: p.CoinsBalance, XP: p.XPTotal}
	}
}

func (s *LearnScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	// Result overlay: any key returns to the refreshed lesson list.
	if s.result != nil {
		s.result = nil
		s.levelUp = 0
		s.stageUp = ""
		s.session.ResetAttempt()
		s.leaveLesson()
		s.loading = true
		return s, s.loadPage(s.pageNum)
	}

	if s.submitting {
		return s, nil
	}

	if s.session.Lesson() == nil {
		return s.handleListKey(key)
	}
	if s.reading {
		return s.handleReadingKey(key)
	}
	return s.handleQuizKey(key)
}

func (s *LearnScreen) handleListKey(key string) (screen.Screen, tea.Cmd) {
	page := s.session.Page()

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if page != nil && s.cursor < len(page.Items)-1 {
			s.cursor++
		}
	case "left", "h":
		if s.pageNum > 1 {
			s.loading = true
			return s, s.loadPage(s.pageNum - 1)
		}
	case "right", "l":
		if page != nil && s.pageNum < page.TotalPages {
			s.loading = true
			return s, s.loadPage(s.pageNum + 1)
		}
	case "enter":
		if page == nil || s.cursor >= len(page.Items) {
			return s, nil
		}
		if err := s.session.SelectLesson(page.Items[s.cursor].ID); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		s.reading = true
		s.optCursor = 0
		s.errMsg = ""
	}
	return s, nil
}

func (s *LearnScreen) handleReadingKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "esc":
		s.leaveLesson()
	case "enter":
		s.reading = false
		s.optCursor = 0
	}
	return s, nil
}

func (s *LearnScreen) handleQuizKey(key string) (screen.Screen, tea.Cmd) {
	q := s.session.Current()

	switch key {
	case "esc":
		s.leaveLesson()
		return s, nil

	case "left", "h":
		s.session.Previous()
		s.optCursor = 0
		return s, nil

	case "right", "l":
		s.session.Next()
		s.optCursor = 0
		return s, nil

	case "up", "k":
		if s.optCursor > 0 {
			s.optCursor--
		}
		return s, nil

	case "down", "j":
		if q != nil && s.optCursor < len(q.Options)-1 {
			s.optCursor++
		}
		return s, nil

	case "space", " ":
		if q == nil || s.optCursor >= len(q.Options) {
			return s, nil
		}
		if err := s.session.ChooseOption(q.ID, q.Options[s.optCursor]); err != nil {
			if errors.Is(err, quiz.ErrAnswerLocked) {
				return s, nil
			}
			s.errMsg = err.Error()
		} else {
			s.errMsg = ""
		}
		return s, nil

	case "enter":
		if s.session.Complete() {
			return s.beginSubmit()
		}
		return s.beginCheck()
	}

	return s, nil
}

func (s *LearnScreen) beginCheck() (screen.Screen, tea.Cmd) {
	req, err := s.session.BeginCheck()
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrNoDraft):
			s.errMsg = "Choose an answer first."
		case errors.Is(err, quiz.ErrCheckInFlight), errors.Is(err, quiz.ErrAnswerLocked):
			// Nothing to do.
		default:
			s.errMsg = err.Error()
		}
		return s, nil
	}

	s.errMsg = ""
	return s, func() tea.Msg {
		v, err := s.client.CheckAnswer(context.Background(), req.LessonID, req.QuestionID, req.Answer)
		return verdictMsg{Tag: req.Tag, Verdict: v, Err: err}
	}
}

func (s *LearnScreen) beginSubmit() (screen.Screen, tea.Cmd) {
	att, err := s.session.Attempt()
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	s.submitting = true
	s.errMsg = ""
	s.rewardXP = att.RewardXP
	s.rewardCoin = att.RewardCoins

	return s, func() tea.Msg {
		res, err := s.coordinator.Submit(context.Background(), att)
		return submitDoneMsg{LessonID: att.LessonID, Result: res, Err: err}
	}
}

// leaveLesson returns to the lesson list, abandoning the attempt.
func (s *LearnScreen) leaveLesson() {
	s.session.Deselect()
	s.reading = false
	s.errMsg = ""
}
