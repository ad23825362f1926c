package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Seed categories, courses and their links",
	Long: `Clear and repopulate the categories, courses and course_categories tables.
Courses are assigned to existing instructors, so the users stage runs first
when its data is missing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageCatalog)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
