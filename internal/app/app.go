package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/auth"
	"github.com/investipet/investipet/internal/cache"
	"github.com/investipet/investipet/internal/router"
	"github.com/investipet/investipet/internal/screen"
	"github.com/investipet/investipet/internal/screens/home"
	"github.com/investipet/investipet/internal/screens/login"
	"github.com/investipet/investipet/internal/store"
	"github.com/investipet/investipet/internal/submit"
	"github.com/investipet/investipet/internal/ui/layout"
)

// Deps are the wired services the screens depend on. Attempts may be nil
// when the local history database could not be opened.
type Deps struct {
	Client      *api.Client
	Creds       auth.Store
	Profiles    *cache.Store
	Coordinator *submit.Coordinator
	Attempts    store.AttemptRepo
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
	coins  int
	xp     int
}

// newAppModel creates the root model. A stored credential skips the
// sign-in form; an expired one surfaces later as an auth error and the
// user signs in again.
func newAppModel(deps Deps) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(deps.Client, deps.Profiles, deps.Coordinator, deps.Attempts)
	}

	var initial screen.Screen
	if deps.Creds.Tokens().Empty() {
		initial = login.New(deps.Client, homeFactory)
	} else {
		initial = homeFactory()
	}

	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.WalletUpdatedMsg:
		m.coins = msg.Coins
		m.xp = msg.XP
		// Fall through to the router so screens see it too.

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.coins, m.xp, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(deps Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
