package home

import (
	"charm.land/lipgloss/v2"

	"github.com/investipet/investipet/internal/ui/theme"
)

// Pet art per growth stage. Stages are server-authoritative; an unknown
// stage falls back to the egg.
const petEgg = `   ╭───╮
  ╱ ◠◠◠ ╲
 │ ◠◠◠◠◠ │
 │ ◠◠◠◠◠ │
  ╲_____╱`

const petBaby = ` ╭─────╮
 │ •  • │
 │  ▿   │
 ╰─┬─┬──╯
   ╵ ╵`

const petTeen = ` ╭───────╮
 │ ◉   ◉ │
 │   ▿   │
 │  ───  │
 ╰─┬───┬─╯
   ╱   ╲`

const petAdult = `  ╭─────────╮
 ╱  ◉     ◉  ╲
 │     ▿     │
 │   ╰───╯   │
 ╰──┬─────┬──╯
   ╱╱     ╲╲`

// RenderPet returns the pet art for the given stage, colored by hunger.
// A hungry pet renders dim as a nudge to feed it.
func RenderPet(stage string, hunger int) string {
	var art string
	switch stage {
	case "baby":
		art = petBaby
	case "teen":
		art = petTeen
	case "adult":
		art = petAdult
	default:
		art = petEgg
	}

	fg := theme.Primary
	if hunger < 30 {
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
