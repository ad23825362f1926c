package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// statusTables lists the seeded tables in hierarchy order.
var statusTables = []string{
	"users", "user_roles", "categories", "courses", "course_categories",
	"chapters", "lessons", "user_courses", "course_ratings", "user_lesson_progress",
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show row counts for every seeded table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		gw, err := openGateway(cmd, cfg)
		if err != nil {
			return err
		}
		defer gw.Close()

		color.Cyan("📊 Table counts (%s)", cfg.Database.Provider)
		fmt.Println()

		total := 0
		for _, table := range statusTables {
			count, err := gw.Count(cmd.Context(), table, nil)
			if err != nil {
				color.Red("  ❌ %-22s %v", table, err)
				continue
			}
			total += count
			if count == 0 {
				color.Yellow("  ⚠️  %-22s %d", table, count)
			} else {
				color.Green("  ✅ %-22s %d", table, count)
			}
		}

		fmt.Println()
		color.Cyan("Total rows: %d", total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
