package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Seed every table in dependency order",
	Long:  `Run all generation stages: users, catalog, curriculum, enrollments, ratings and progress.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageNames()...)
	},
}

func init() {
	rootCmd.AddCommand(allCmd)
}
