package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var enrollmentsCmd = &cobra.Command{
	Use:   "enrollments",
	Short: "Seed course enrollments for active students",
	Long: `Clear and repopulate the user_courses table. Each active student enrolls
in a handful of published courses; enrollment status and completion dates
follow the enrollment's age.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageEnrollments)
	},
}

func init() {
	rootCmd.AddCommand(enrollmentsCmd)
}
