package cmd

import (
	"fmt"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/storage/sqlstore"
	"github.com/frahmantamala/salary-calculator/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "Apply the embedded sql migrations to the configured database",
	}
	migrateRollback bool
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "rollback the latest applied migration")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Storage.Driver == internal.StorageDriverRedis {
		return fmt.Errorf("driver %s has no schema to migrate", cfg.Storage.Driver)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper()

	ctx, cancel := internal.WithTimeout(cmd.Context(), 0)
	defer cancel()

	gdb, err := sqlstore.Connect(ctx, cfg.Storage)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	run, verb := sqlstore.Migrate, "applied"
	if migrateRollback {
		run, verb = sqlstore.Rollback, "rolled back"
	}
	if err := run(ctx, sqlDB, cfg.Storage.Driver, lg); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Migrations %s on %s.\n", verb, cfg.Storage.Driver)
	return nil
}
