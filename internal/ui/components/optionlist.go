package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/ui/theme"
)

// OptionList is an answer selector for a multiple-choice question. The
// component never knows which option is correct; grading happens on the
// server and the screen surfaces the verdict separately.
type OptionList struct {
	Prompt  string
	Options []string
	Cursor  int
	Draft   string // currently chosen option, empty if none
	Locked  bool   // answer verified, no further edits
}

// NewOptionList creates an option list for the given question.
func NewOptionList(prompt string, options []string) OptionList {
	return OptionList{
		Prompt:  prompt,
		Options: options,
	}
}

// Init returns nil.
func (o OptionList) Init() tea.Cmd {
	return nil
}

// Update handles cursor movement. Choosing an option is reported through
// Chose so the screen can record the draft.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	if o.Locked {
		return o, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return o, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "down", "j":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	}

	return o, nil
}

// Chose returns the option under the cursor, or "" if there are no options.
func (o OptionList) Chose() string {
	if o.Cursor < 0 || o.Cursor >= len(o.Options) {
		return ""
	}
	return o.Options[o.Cursor]
}

// View renders the question and its options.
func (o OptionList) View() string {
	s := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(o.Prompt) + "\n\n"

	labels := []string{"A", "B", "C", "D", "E", "F"}

	for i, opt := range o.Options {
		label := fmt.Sprintf("%d", i+1)
		if i < len(labels) {
			label = labels[i]
		}

		prefix := "  "
		if i == o.Cursor && !o.Locked {
			prefix = "▸ "
		}

		marker := " "
		if opt == o.Draft {
			marker = "●"
		}

		line := fmt.Sprintf("%s%s %s)  %s", prefix, marker, label, opt)

		switch {
		case o.Locked && opt == o.Draft:
			s += theme.Correct.Render(line) + "\n"
		case o.Locked:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == o.Cursor:
			s += theme.Selected.Render(line) + "\n"
		case opt == o.Draft:
			s += lipgloss.NewStyle().Foreground(theme.Secondary).Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}
