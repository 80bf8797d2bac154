package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in and store credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if email == "" || password == "" {
			return fmt.Errorf("both --email and --password are required")
		}

		client, _, _, cleanup, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Login(cmd.Context(), email, password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		fmt.Println("Signed in as", email)
		return nil
	},
}

func init() {
	loginCmd.Flags().String("email", "", "Account email")
	loginCmd.Flags().String("password", "", "Account password")
}
