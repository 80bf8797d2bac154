package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and hatch a pet",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		petName, _ := cmd.Flags().GetString("pet")
		if email == "" || password == "" || petName == "" {
			return fmt.Errorf("--email, --password and --pet are required")
		}

		client, _, _, cleanup, err := buildClient(cmd)
		if err != nil {
			return err
		}
		defer cleanup()

		if err := client.Register(cmd.Context(), email, password, petName); err != nil {
			return fmt.Errorf("register: %w", err)
		}
		fmt.Printf("Welcome! %s is waiting for you.\n", petName)
		return nil
	},
}

func init() {
	registerCmd.Flags().String("email", "", "Account email")
	registerCmd.Flags().String("password", "", "Account password")
	registerCmd.Flags().String("pet", "", "Name for your new pet")
}
