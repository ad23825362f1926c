package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var curriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "Seed chapters and lessons for every course",
	Long: `Clear and repopulate the chapters and lessons tables. Chapter and lesson
timestamps and statuses are derived from their course, so archived courses
produce archived content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageCurriculum)
	},
}

func init() {
	rootCmd.AddCommand(curriculumCmd)
}
