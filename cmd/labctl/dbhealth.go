package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/repository"
)

var dbhealthCmd = &cobra.Command{
	Use:   "dbhealth",
	Short: "Check connectivity to the configured database",
	Long: `Opens the database named by DB_URL and runs a round-trip health check.
Exits non-zero when the database is unreachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := common.LoadConfig()
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		db, err := repository.Open(ctx, cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer repository.Close(db, logger)

		if err := repository.HealthCheck(ctx, db, logger); err != nil {
			return fmt.Errorf("database health: FAIL: %w", err)
		}
		fmt.Println("database health: OK")
		return nil
	},
}
