package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Seed student and instructor accounts",
	Long:  `Clear and repopulate the users and user_roles tables with student and instructor accounts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageUsers)
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
}
