package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"pelada/internal/auth"
	"pelada/internal/backend"
	"pelada/internal/cache"
	"pelada/internal/checkout"
	"pelada/internal/config"
	"pelada/internal/db"
	"pelada/internal/logger"
	"pelada/internal/profile"
	"pelada/internal/shell"
)

var ErrBackendRequired = errors.New("production mode requires SUPABASE_URL (https) and SUPABASE_ANON_KEY")

// App holds the components shared by the service and the CLI.
type App struct {
	Config    *config.Config
	Gate      *backend.Gate
	Client    *backend.Client
	DB        *sqlx.DB
	Redis     *redis.Client
	Cache     *cache.Cache
	Auth      *auth.Service
	Verifier  *auth.TokenVerifier
	Registry  *shell.Registry
	Initiator *checkout.Initiator
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	app.Gate = backend.NewGate(cfg.SupabaseURL, cfg.SupabaseAnonKey)
	if !app.Gate.Configured() {
		if cfg.IsProduction() {
			return nil, ErrBackendRequired
		}
		logger.Warn("backend not configured, running with empty data", "mode", cfg.Mode)
	}

	store, err := app.newStore(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Client = backend.NewClient(app.Gate, store)

	if cfg.RedisURL != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("catalog cache disabled", "error", err)
		} else {
			app.Redis = rdb
			app.Cache = cache.New(rdb, cfg.CatalogCacheTTL)
		}
	}

	app.Auth = auth.NewService(app.Gate, nil)
	app.Verifier = auth.NewVerifier(cfg.SupabaseJWTSecret, app.Auth)
	app.Registry = shell.NewRegistry(shell.NewHooksFactory(app.Client, app.Cache), cfg.ShellTTL)

	provider := checkout.NewStripeProvider(checkout.StripeConfig{SecretKey: cfg.StripeSecretKey})
	app.Initiator = checkout.NewInitiator(
		provider,
		checkout.PriceTableFromConfig(cfg),
		profile.NewRepository(app.Client),
		cfg.SiteURL,
	)

	return app, nil
}

func (a *App) newStore(ctx context.Context) (backend.Store, error) {
	switch a.Config.BackendDriver {
	case config.DriverPostgres:
		database, err := db.Connect(ctx, a.Config.DatabaseURL)
		if err != nil {
			return nil, err
		}
		a.DB = database
		logger.Info("database connected", "driver", config.DriverPostgres)

		if a.Config.RunMigrations {
			if err := db.RunMigrations(database, a.Config.MigrationsPath); err != nil {
				return nil, err
			}
			logger.Info("migrations completed", "path", a.Config.MigrationsPath)
		}
		return backend.NewPostgresStore(database), nil
	case config.DriverREST:
		return backend.NewRESTStore(backend.RESTConfig{
			URL:    a.Config.SupabaseURL,
			APIKey: a.Config.SupabaseAnonKey,
		}), nil
	default:
		return nil, fmt.Errorf("unknown backend driver %q", a.Config.BackendDriver)
	}
}

// BackendConfigured reports whether data and identity calls can reach the backend.
func (a *App) BackendConfigured() bool {
	return a.Client.Configured()
}

func (a *App) Close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Warn("failed to close redis", "error", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			logger.Warn("failed to close database", "error", err)
		}
	}
}
