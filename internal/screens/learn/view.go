package learn

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/ui/components"
	"github.com/investipet/investipet/internal/ui/theme"
)

func (s *LearnScreen) View(width, height int) string {
	switch {
	case s.result != nil:
		return s.renderResult(width, height)
	case s.loading:
		return renderLoading(width)
	case s.session.Lesson() == nil:
		return s.renderLessonList(width)
	case s.reading:
		return s.renderReading(width, height)
	default:
		return s.renderQuiz(width)
	}
}

// renderLessonList renders the paged lesson browser.
func (s *LearnScreen) renderLessonList(width int) string {
	page := s.session.Page()
	if page == nil || len(page.Items) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No lessons yet. Check back soon!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, lesson := range page.Items {
		prefix := "  "
		if i == s.cursor {
			prefix = "▸ "
		}

		status := "   "
		if lesson.Completed {
			status = " ✓ "
			if lesson.Score != nil {
				status = fmt.Sprintf(" ✓ %.0f%%", *lesson.Score)
			}
		}

		reward := fmt.Sprintf("+%d XP  +%d coins", lesson.RewardXP, lesson.RewardCoins)

		line := fmt.Sprintf("%s%-40s %-8s %s", prefix, lesson.Title, status, reward)

		style := theme.Unselected
		if i == s.cursor {
			style = theme.Selected
		} else if lesson.Completed {
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	pageLine := fmt.Sprintf("Page %d of %d", page.Page, page.TotalPages)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(pageLine)))

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

// renderReading renders the lesson body before the quiz starts.
func (s *LearnScreen) renderReading(width, height int) string {
	lesson := s.session.Lesson()

	var sections []string
	sections = append(sections, theme.Title.Width(min(width-8, 70)).Render(lesson.Title))
	sections = append(sections, "")

	body := lipgloss.NewStyle().
		Width(min(width-8, 70)).
		Foreground(theme.Text).
		Render(lesson.Body)
	sections = append(sections, body)
	sections = append(sections, "")

	sections = append(sections, theme.Hint.Render(
		fmt.Sprintf("%d questions ahead. Press Enter when you're ready.", len(lesson.Quiz))))

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderQuiz renders the current question with its options and feedback.
func (s *LearnScreen) renderQuiz(width int) string {
	lesson := s.session.Lesson()
	q := s.session.Current()
	if q == nil {
		return renderLoading(width)
	}

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + lesson.Title)

	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  verified %d/%d",
			s.session.QuestionIndex()+1, len(lesson.Quiz),
			s.session.VerifiedCount(), len(lesson.Quiz)))

	infoLine := infoLeft
	rightPad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4
	if rightPad > 0 {
		infoLine += strings.Repeat(" ", rightPad) + infoRight
	}

	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width-4)))
	b.WriteString("\n\n")

	opts := components.OptionList{
		Prompt:  q.Prompt,
		Options: q.Options,
		Cursor:  s.optCursor,
		Draft:   s.session.Draft(q.ID),
		Locked:  s.session.IsVerified(q.ID),
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, opts.View()))
	b.WriteString("\n")

	// Status line: in-flight check, feedback, or completion prompt.
	switch {
	case s.submitting:
		b.WriteString(centered(width, theme.Hint.Render("Submitting lesson...")))
	case s.session.Checking():
		b.WriteString(centered(width, theme.Hint.Render("Checking...")))
	case s.session.Feedback() != nil:
		fb := s.session.Feedback()
		style := theme.Correct
		if !fb.Correct {
			style = theme.Incorrect
		}
		b.WriteString(centered(width, style.Render(fb.Text)))
	case s.session.Complete():
		b.WriteString(centered(width, theme.Correct.Render("All answers verified! Press Enter to submit.")))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(centered(width, theme.Incorrect.Render(s.errMsg)))
	}

	return b.String()
}

// renderResult renders the graded submission with the reconciled rewards.
func (s *LearnScreen) renderResult(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Lesson complete!"))
	sections = append(sections, "")
	sections = append(sections, theme.Body.Render(
		fmt.Sprintf("Score: %.0f%%", s.result.Score)))

	if s.result.Completed {
		reward := fmt.Sprintf("+%d XP   +%d coins", s.rewardXP, s.rewardCoin)
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Accent).Bold(true).Render(reward))
	}

	if s.levelUp > 0 {
		sections = append(sections, "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Success).Bold(true).
			Render(fmt.Sprintf("Level up! Your pet reached level %d.", s.levelUp)))
		if s.stageUp != "" {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.Success).
				Render(fmt.Sprintf("It grew into its %s stage!", s.stageUp)))
		}
	}

	sections = append(sections, "")
	sections = append(sections, theme.Hint.Render("Press any key to continue."))

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
		Render("\n\n  Loading lessons...")
}

func centered(width int, s string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
