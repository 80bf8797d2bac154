package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, _, cleanup, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Logout(); err != nil {
			return fmt.Errorf("logout: %w", err)
		}
		fmt.Println("Signed out.")
		return nil
	},
}
