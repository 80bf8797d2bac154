package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/router"
	"github.com/investipet/investipet/internal/screen"
	"github.com/investipet/investipet/internal/ui/components"
	"github.com/investipet/investipet/internal/ui/layout"
	"github.com/investipet/investipet/internal/ui/theme"
)

// authDoneMsg is sent when a login or register call returns.
type authDoneMsg struct {
	Err error
}

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// LoginScreen collects credentials and signs the user in. On success it
// replaces itself with the home screen so the back stack never returns
// to the credentials form.
type LoginScreen struct {
	client      *api.Client
	homeFactory func() screen.Screen

	mode       mode
	inputs     []components.TextInput
	focus      int
	submitting bool
	errMsg     string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that will transition to the screen produced
// by homeFactory after a successful sign-in.
func New(client *api.Client, homeFactory func() screen.Screen) *LoginScreen {
	s := &LoginScreen{
		client:      client,
		homeFactory: homeFactory,
	}
	s.buildInputs()
	return s
}

func (s *LoginScreen) buildInputs() {
	email := components.NewTextInput("Email", "you@example.com", false)
	password := components.NewTextInput("Password", "", true)

	s.inputs = []components.TextInput{email, password}
	if s.mode == modeRegister {
		petName := components.NewTextInput("Pet name", "Bucky", false)
		s.inputs = append(s.inputs, petName)
	}
	s.focus = 0
}

func (s *LoginScreen) Title() string {
	if s.mode == modeRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	toggle := "Register"
	if s.mode == modeRegister {
		toggle = "Sign in"
	}
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Ctrl+R", Description: toggle},
	}
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[0].Focus()
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		s.submitting = false
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		home := s.homeFactory()
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: home}
		}

	case tea.KeyMsg:
		if s.submitting {
			return s, nil
		}
		switch msg.String() {
		case "tab", "down":
			return s, s.setFocus((s.focus + 1) % len(s.inputs))
		case "shift+tab", "up":
			return s, s.setFocus((s.focus - 1 + len(s.inputs)) % len(s.inputs))
		case "enter":
			if s.focus < len(s.inputs)-1 {
				return s, s.setFocus(s.focus + 1)
			}
			return s.submit()
		case "ctrl+r":
			if s.mode == modeLogin {
				s.mode = modeRegister
			} else {
				s.mode = modeLogin
			}
			s.errMsg = ""
			s.buildInputs()
			return s, s.inputs[0].Focus()
		}
	}

	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *LoginScreen) setFocus(i int) tea.Cmd {
	s.inputs[s.focus].Blur()
	s.focus = i
	return s.inputs[s.focus].Focus()
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	email := strings.TrimSpace(s.inputs[0].Value())
	password := s.inputs[1].Value()
	if email == "" || password == "" {
		s.errMsg = "Email and password are required."
		return s, nil
	}

	var petName string
	if s.mode == modeRegister {
		petName = strings.TrimSpace(s.inputs[2].Value())
		if petName == "" {
			s.errMsg = "Give your pet a name."
			return s, nil
		}
	}

	s.submitting = true
	s.errMsg = ""
	register := s.mode == modeRegister

	return s, func() tea.Msg {
		ctx := context.Background()
		var err error
		if register {
			err = s.client.Register(ctx, email, password, petName)
		} else {
			err = s.client.Login(ctx, email, password)
		}
		return authDoneMsg{Err: err}
	}
}

func (s *LoginScreen) View(width, height int) string {
	var sections []string

	title := "Welcome back!"
	subtitle := "Sign in to check on your pet."
	if s.mode == modeRegister {
		title = "Join InvestiPet"
		subtitle = "Create an account and hatch your pet."
	}

	sections = append(sections, theme.Title.Width(40).Render(title))
	sections = append(sections, theme.Subtitle.Width(40).Render(subtitle))
	sections = append(sections, "")

	for i := range s.inputs {
		sections = append(sections, s.inputs[i].View())
		sections = append(sections, "")
	}

	if s.submitting {
		sections = append(sections, theme.Hint.Render("Signing in..."))
	} else if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
