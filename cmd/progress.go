package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Seed per-lesson progress for every enrollment",
	Long: `Clear and repopulate the user_lesson_progress table. Every non-dropped
enrollment gets one row per lesson of its course, with access dates walking
forward through the lesson sequence.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageProgress)
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
