package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/api"
	"github.com/investipet/investipet/internal/cache"
	"github.com/investipet/investipet/internal/progression"
	"github.com/investipet/investipet/internal/router"
	"github.com/investipet/investipet/internal/screen"
	"github.com/investipet/investipet/internal/screens/history"
	"github.com/investipet/investipet/internal/screens/learn"
	"github.com/investipet/investipet/internal/store"
	"github.com/investipet/investipet/internal/submit"
	"github.com/investipet/investipet/internal/ui/components"
	"github.com/investipet/investipet/internal/ui/theme"
)

// profileLoadedMsg is sent when the profile snapshot has been fetched.
type profileLoadedMsg struct {
	Profile *api.ProfileSnapshot
	Err     error
}

// HomeScreen is the main screen: pet, wallet, level progress and the
// navigation menu.
type HomeScreen struct {
	client      *api.Client
	profiles    *cache.Store
	coordinator *submit.Coordinator
	attempts    store.AttemptRepo

	menu    components.Menu
	profile *api.ProfileSnapshot
	loading bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen with injected dependencies. attempts may
// be nil when the local history database is unavailable.
func New(client *api.Client, profiles *cache.Store, coordinator *submit.Coordinator, attempts store.AttemptRepo) *HomeScreen {
	h := &HomeScreen{
		client:      client,
		profiles:    profiles,
		coordinator: coordinator,
		attempts:    attempts,
		loading:     true,
	}

	items := []components.MenuItem{
		{Label: "LEARN HUB", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: learn.New(client, profiles, coordinator),
				}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(attempts)}
			}
		}, Disabled: attempts == nil},
		{Label: "REFRESH", Action: func() tea.Cmd {
			h.profiles.Clear()
			h.loading = true
			h.profile = nil
			return h.loadProfile()
		}},
		{Label: "LOG OUT", Action: func() tea.Cmd {
			_ = client.Logout()
			return tea.Quit
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadProfile()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// loadProfile fetches the profile snapshot through the cache.
func (h *HomeScreen) loadProfile() tea.Cmd {
	return func() tea.Msg {
		profile, err := h.profiles.Me(context.Background())
		return profileLoadedMsg{Profile: profile, Err: err}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		h.loading = false
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.profile = msg.Profile
		return h, func() tea.Msg {
			return screen.WalletUpdatedMsg{
				Coins: msg.Profile.CoinsBalance,
				XP:    msg.Profile.XPTotal,
			}
		}

	case screen.WalletUpdatedMsg:
		// A submission elsewhere changed balances; refetch on next view.
		if h.profile != nil && (h.profile.CoinsBalance != msg.Coins || h.profile.XPTotal != msg.XP) {
			h.loading = true
			return h, h.loadProfile()
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	if h.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render("Could not load profile: "+h.errMsg))
		sections = append(sections, "")
	} else if h.loading || h.profile == nil {
		sections = append(sections, theme.Hint.Render("Loading your pet..."))
		sections = append(sections, "")
	} else {
		sections = append(sections, h.renderPetCard(width))
		sections = append(sections, "")
	}

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// renderPetCard renders the pet, its vitals and the level progress bar.
func (h *HomeScreen) renderPetCard(width int) string {
	p := h.profile
	pet := p.Pet

	var b strings.Builder

	art := RenderPet(pet.Stage, pet.Hunger)
	b.WriteString(lipgloss.PlaceHorizontal(44, lipgloss.Center, art))
	b.WriteString("\n\n")

	name := fmt.Sprintf("%s the %s", pet.Name, pet.Species)
	b.WriteString(lipgloss.PlaceHorizontal(44, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(name)))
	b.WriteString("\n")

	// The server's pet level and stage are authoritative. The projection
	// only supplies the bar fill and the XP-within-level numbers.
	levelLabel := fmt.Sprintf("Lv %d  (%s)", pet.Level, pet.Stage)
	b.WriteString(lipgloss.PlaceHorizontal(44, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(levelLabel)))
	b.WriteString("\n\n")

	proj := progression.Project(p.XPTotal, progression.LevelThresholds)
	bar := components.NewProgressBar("XP", float64(proj.Percent)/100, true, 40)
	b.WriteString(bar.View())
	b.WriteString("\n")
	if proj.IsMaxLevel {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Max level reached!"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("%d / %d XP to level %d", proj.CurrentLevelXP, proj.XPNeeded, pet.Level+1)))
	}
	b.WriteString("\n\n")

	vitals := fmt.Sprintf("◉ %d coins   $%.2f cash   hunger %d%%",
		p.CoinsBalance, p.CashBalance, pet.Hunger)
	b.WriteString(lipgloss.PlaceHorizontal(44, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(vitals)))

	return b.String()
}
