package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/salary-calculator/internal"
	"github.com/frahmantamala/salary-calculator/internal/auth"
	"github.com/frahmantamala/salary-calculator/internal/employee"
	employeeStore "github.com/frahmantamala/salary-calculator/internal/employee/kvstore"
	"github.com/frahmantamala/salary-calculator/internal/history"
	historyStore "github.com/frahmantamala/salary-calculator/internal/history/kvstore"
	"github.com/frahmantamala/salary-calculator/internal/salary"
	"github.com/frahmantamala/salary-calculator/internal/storage"
	"github.com/frahmantamala/salary-calculator/internal/storage/redisstore"
	"github.com/frahmantamala/salary-calculator/internal/storage/sqlstore"
	"github.com/frahmantamala/salary-calculator/internal/theme"
	userStore "github.com/frahmantamala/salary-calculator/internal/user/kvstore"
	"github.com/frahmantamala/salary-calculator/pkg/logger"
)

// Dependencies is everything a command needs, built once per invocation.
type Dependencies struct {
	Config     *internal.Config
	Logger     *slog.Logger
	Store      storage.KV
	Calculator *salary.Calculator
	Auth       *auth.Service
	History    *history.Service
	Employees  *employee.Service
	Theme      *theme.Service
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	lg := logger.LoggerWrapper().With("env", cfg.App.Env)

	store, err := initStore(ctx, cfg.Storage, lg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	rates := salary.RatesFromPercent(cfg.Deductions.Tax, cfg.Deductions.Retirement, cfg.Deductions.Insurance)
	calculator := salary.NewCalculator(rates, lg)

	users := userStore.NewUserRepository(store)
	authService := auth.NewService(users, users, lg)
	historyService := history.NewService(historyStore.NewHistoryRepository(store), calculator, lg)
	employeeService := employee.NewService(
		employeeStore.NewEmployeeRepository(store),
		calculator,
		historyService,
		cfg.Employee.DefaultWorkingDays,
		lg,
	)

	// an unreadable session is logged and treated as signed out
	_, _ = authService.Restore(ctx)

	return &Dependencies{
		Config:     cfg,
		Logger:     lg,
		Store:      store,
		Calculator: calculator,
		Auth:       authService,
		History:    historyService,
		Employees:  employeeService,
		Theme:      theme.NewService(store, lg),
	}, nil
}

func (d *Dependencies) Close() {
	if err := d.Store.Close(); err != nil {
		d.Logger.Error("store close error", "error", err)
	}
}

// initStore opens the configured key-value backend.
func initStore(ctx context.Context, cfg internal.StorageConfig, lg *slog.Logger) (storage.KV, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()

	switch cfg.Driver {
	case internal.StorageDriverSQLite, internal.StorageDriverPostgres:
		db, err := sqlstore.Open(ctx, cfg, lg)
		if err != nil {
			return nil, err
		}
		return sqlstore.New(db), nil
	case internal.StorageDriverRedis:
		client, err := redisstore.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redisstore.New(client, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// withDependencies runs fn with a fully wired app and closes it afterwards.
func withDependencies(ctx context.Context, fn func(ctx context.Context, deps *Dependencies) error) error {
	deps, err := initializeDependencies(ctx)
	if err != nil {
		return err
	}
	defer deps.Close()

	return fn(ctx, deps)
}
