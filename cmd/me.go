package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investipet/investipet/internal/progression"
)

var meCmd = &cobra.Command{
	Use:   "me",
	Short: "Show your profile and pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, cleanup, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		me, err := client.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetch profile: %w", err)
		}

		proj := progression.Project(me.XPTotal, progression.LevelThresholds)

		fmt.Println(me.Email)
		fmt.Printf("  %s the %s, level %d (%s)\n", me.Pet.Name, me.Pet.Species, me.Pet.Level, me.Pet.Stage)
		if proj.IsMaxLevel {
			fmt.Printf("  XP: %d (max level)\n", me.XPTotal)
		} else {
			fmt.Printf("  XP: %d (%d/%d to level %d, %d%%)\n",
				me.XPTotal, proj.CurrentLevelXP, proj.XPNeeded, proj.Level+1, proj.Percent)
		}
		fmt.Printf("  Coins: %d   Cash: $%.2f   Hunger: %d%%\n", me.CoinsBalance, me.CashBalance, me.Pet.Hunger)
		return nil
	},
}
