package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investipet/investipet/internal/config"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "List lessons and their completion state",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, cleanup, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		page, _ := cmd.Flags().GetInt("page")
		cfg := config.FromEnv()

		lp, err := client.ListLessons(cmd.Context(), page, cfg.PageSize)
		if err != nil {
			return fmt.Errorf("list lessons: %w", err)
		}

		for _, lesson := range lp.Items {
			status := " "
			if lesson.Completed {
				status = "✓"
			}
			fmt.Printf("%s #%d  %-40s  +%d XP  +%d coins", status, lesson.ID, lesson.Title, lesson.RewardXP, lesson.RewardCoins)
			if lesson.Score != nil {
				fmt.Printf("  (%.0f%%)", *lesson.Score)
			}
			fmt.Println()
		}
		fmt.Printf("\nPage %d of %d (%d lessons total)\n", lp.Page, lp.TotalPages, lp.Total)
		return nil
	},
}

func init() {
	lessonsCmd.Flags().Int("page", 1, "Page number")
}
