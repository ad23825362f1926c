package cmd

import (
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/seeder"
)

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Seed course ratings and reviews",
	Long: `Clear and repopulate the course_ratings table with star ratings skewed
towards four and five stars, each with a matching review text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStages(cmd, seeder.StageRatings)
	},
}

func init() {
	rootCmd.AddCommand(ratingsCmd)
}
