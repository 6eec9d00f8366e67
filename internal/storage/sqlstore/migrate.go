package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/frahmantamala/salary-calculator/db"
	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/pressly/goose/v3"
)

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate applies every pending migration embedded in the binary.
func Migrate(ctx context.Context, sqlDB *sql.DB, driver string, logger *slog.Logger) error {
	return runGoose(driver, logger, func() error {
		return goose.UpContext(ctx, sqlDB, db.MigrationsDir)
	})
}

// Rollback reverts the latest applied migration.
func Rollback(ctx context.Context, sqlDB *sql.DB, driver string, logger *slog.Logger) error {
	return runGoose(driver, logger, func() error {
		return goose.DownContext(ctx, sqlDB, db.MigrationsDir)
	})
}

func runGoose(driver string, logger *slog.Logger, run func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	dialect, err := gooseDialect(driver)
	if err != nil {
		return err
	}

	goose.SetBaseFS(db.Migrations)
	goose.SetTableName("schema_migrations")
	goose.SetLogger(&gooseLogger{logger: logger})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := run(); err != nil {
		return fmt.Errorf("goose: %w", err)
	}
	return nil
}

func gooseDialect(driver string) (string, error) {
	switch driver {
	case internal.StorageDriverSQLite:
		return "sqlite3", nil
	case internal.StorageDriverPostgres:
		return "postgres", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driver)
	}
}

type gooseLogger struct {
	logger *slog.Logger
}

func (l *gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
}

func (l *gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), "component", "goose")
	os.Exit(1)
}
