package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/openlms/seedgen/internal/config"
	"github.com/openlms/seedgen/internal/database"
	"github.com/openlms/seedgen/internal/seeder"
)

// runStages is the shared body of every generation command: load and validate
// the config, connect, run the requested stages, and write the report when
// one was asked for.
func runStages(cmd *cobra.Command, stages ...string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	gw, err := openGateway(cmd, cfg)
	if err != nil {
		return err
	}

	s := seeder.NewSeeder(cfg, gw, seedValue)
	defer s.Close()

	summary, err := s.Run(cmd.Context(), stages)
	if err != nil {
		return err
	}

	if reportFile != "" {
		if err := summary.WriteReport(reportFile); err != nil {
			return err
		}
		color.Cyan("📄 Report written to %s", reportFile)
	}

	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if profileFile != "" {
		if err := cfg.ApplyProfile(profileFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openGateway(cmd *cobra.Command, cfg *config.Config) (*database.SQLGateway, error) {
	dbURL, err := cfg.GetDatabaseURL()
	if err != nil {
		return nil, err
	}
	gw, err := database.Open(cmd.Context(), cfg.Database.Provider, dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gw, nil
}
