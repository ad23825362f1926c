package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile     string
	seedValue   int64
	profileFile string
	reportFile  string

	Version = "0.4.1"
)

func showBanner() {
	greenColor := color.New(color.FgGreen, color.Bold)

	banner := []string{
		"╔════════════════════════════════════════════╗",
		"║                                            ║",
		"║   ███████╗███████╗███████╗██████╗          ║",
		"║   ██╔════╝██╔════╝██╔════╝██╔══██╗         ║",
		"║   ███████╗█████╗  █████╗  ██║  ██║         ║",
		"║   ╚════██║██╔══╝  ██╔══╝  ██║  ██║         ║",
		"║   ███████║███████╗███████╗██████╔╝ gen     ║",
		"║   ╚══════╝╚══════╝╚══════╝╚═════╝          ║",
		"║                                            ║",
		"║   🎓 Course platform test data generator   ║",
		"║                                            ║",
		"╚════════════════════════════════════════════╝",
	}

	for _, line := range banner {
		greenColor.Println(line)
	}

	fmt.Print("              ")
	color.New(color.FgCyan, color.Bold).Print("Version: ")
	color.New(color.FgYellow, color.Bold).Printf("%s\n", Version)
}

var rootCmd = &cobra.Command{
	Use:   "seedgen",
	Short: "Synthetic data generator for the online course platform schema",
	Long: `
seedgen populates the course platform database with consistent synthetic
data: users and roles, the course catalog, chapters and lessons, enrollments,
ratings and per-lesson progress.

Generated rows respect the schema's lifecycle rules. Children never predate
their parents, archived content stays archived all the way down, and
completion dates always land inside the enrollment's lifetime.

Database Support:
- MySQL
- PostgreSQL
- SQLite`,

	Run: func(cmd *cobra.Command, args []string) {
		showVersion, _ := cmd.Flags().GetBool("version")
		if showVersion {
			fmt.Printf("seedgen version %s\n", Version)
			os.Exit(0)
		}

		if len(args) == 0 {
			showBanner()
			fmt.Println()
			cmd.Help()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./seedgen.config.json)")
	rootCmd.PersistentFlags().Int64Var(&seedValue, "seed", 0, "random seed for reproducible runs (0 = time-based)")
	rootCmd.PersistentFlags().StringVar(&profileFile, "profile", "", "YAML profile overriding target counts")
	rootCmd.PersistentFlags().StringVar(&reportFile, "report", "", "write a YAML run report to this path")

	rootCmd.Flags().BoolP("version", "v", false, "Show CLI version")
}

func initConfig() {
	if err := godotenv.Load(); err != nil {
		godotenv.Load(".env")
		godotenv.Load(".env.local")
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("json")
		viper.SetConfigName("seedgen.config")
	}

	viper.AutomaticEnv()

	viper.ReadInConfig()
}
