package home

import (
	"strings"
	"testing"

	"github.com/investipet/investipet/internal/api"
)

func snapshotFixture() *api.ProfileSnapshot {
	return &api.ProfileSnapshot{
		Email:        "kid@example.com",
		CashBalance:  10000,
		CoinsBalance: 500,
		XPTotal:      120,
		Pet: api.Pet{
			Name:    "Bubbles",
			Species: "axolotl",
			Level:   3,
			Stage:   "baby",
			Hunger:  80,
		},
	}
}

// The server decides the pet's level and stage. The local XP projection
// only drives the progress bar, so a snapshot whose XP total projects to
// a lower level must still display the server's level.
func TestPetCardShowsServerLevel(t *testing.T) {
	h := New(nil, nil, nil, nil)
	h.loading = false
	h.profile = snapshotFixture()

	card := h.renderPetCard(80)

	if !strings.Contains(card, "Lv 3") {
		t.Errorf("expected card to show the server level 3, got:\n%s", card)
	}
	if strings.Contains(card, "Lv 2") {
		t.Errorf("card shows the locally projected level instead of the server's:\n%s", card)
	}
	if !strings.Contains(card, "(baby)") {
		t.Errorf("expected card to show the server stage, got:\n%s", card)
	}
	if !strings.Contains(card, "XP to level 4") {
		t.Errorf("expected next level derived from the server level, got:\n%s", card)
	}
}

// The bar fill still comes from the projection: 120 XP sits 20 into the
// 100..250 band.
func TestPetCardBarUsesProjection(t *testing.T) {
	h := New(nil, nil, nil, nil)
	h.loading = false
	h.profile = snapshotFixture()

	card := h.renderPetCard(80)

	if !strings.Contains(card, "20 / 150 XP") {
		t.Errorf("expected projected within-level XP numbers, got:\n%s", card)
	}
}
