package cmd

import (
	"github.com/spf13/cobra"

	"github.com/investipet/investipet/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "investipet",
	Short: "Learn investing, grow a pet",
	Long:  "InvestiPet is a gamified investing tutor: finish lessons, earn XP and coins, and watch your pet grow from egg to adult.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite history database (overrides INVESTIPET_DB env var)")
	rootCmd.PersistentFlags().String("api", "", "API base URL (overrides INVESTIPET_API_URL env var)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(meCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using the --db flag (highest
// priority), then INVESTIPET_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
