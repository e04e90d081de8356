package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	coreconfig "github.com/tempobot/tempo/core/config"
	coredatabase "github.com/tempobot/tempo/core/database"
	"github.com/tempobot/tempo/core/logger"
	"github.com/tempobot/tempo/core/tracker"
	trackerstore "github.com/tempobot/tempo/core/tracker/store"
)

// App holds the assembled application: the tracker service plus whatever
// backing infrastructure the configured store needed.
type App struct {
	cfg     *Config
	service *tracker.Service

	db  *sqlx.DB
	rdb *redis.Client
}

// CoreConfig exposes the embedded core configuration.
func (a *App) CoreConfig() *coreconfig.Config {
	return a.cfg.CoreConfig()
}

// Service returns the tracker service.
func (a *App) Service() *tracker.Service {
	return a.service
}

// Bootstrap initializes the logger, builds the configured session store and
// wires the tracker service on top of it.
func Bootstrap(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: nil config provided")
	}
	if err := logger.InitLogger(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("bootstrap: logger init failed: %w", err)
	}

	app := &App{cfg: cfg}

	store, err := app.buildStore()
	if err != nil {
		return nil, err
	}

	machine := tracker.NewMachine(helpText())
	app.service = tracker.NewService(machine, store)
	return app, nil
}

func (a *App) buildStore() (tracker.Store, error) {
	switch a.cfg.Core.Store.Backend {
	case coreconfig.StorePostgres:
		db, err := coredatabase.Connect(a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: database initialization failed: %w", err)
		}
		if err := coredatabase.RunMigrations(a.cfg.Database); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap: migrations failed: %w", err)
		}
		a.db = db
		return trackerstore.NewPostgres(db), nil

	case coreconfig.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     a.cfg.Core.Redis.Address,
			Username: a.cfg.Core.Redis.Username,
			Password: a.cfg.Core.Redis.Password,
			DB:       a.cfg.Core.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("bootstrap: redis ping failed: %w", err)
		}
		a.rdb = rdb
		return trackerstore.NewRedis(rdb), nil

	default:
		return trackerstore.NewMemory(), nil
	}
}

// Close releases store infrastructure held by the app.
func (a *App) Close() error {
	var firstErr error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			firstErr = err
		}
		a.db = nil
	}
	if a.rdb != nil {
		if err := a.rdb.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		a.rdb = nil
	}
	return firstErr
}
