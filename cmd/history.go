package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/investipet/investipet/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent lesson submissions",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open history database: %w", err)
		}
		defer st.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		events, err := st.AttemptRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("load history: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No submissions yet.")
			return nil
		}

		for _, ev := range events {
			fmt.Printf("%s  %-40s  %3.0f%%  +%d XP  +%d coins\n",
				ev.CreatedAt.Format("2006-01-02 15:04"), ev.LessonTitle, ev.Score, ev.RewardXP, ev.RewardCoins)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum entries to show")
}
