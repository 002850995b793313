// Package server initializes and runs the account-leasing service.
// It opens the database pool, applies schema migrations, wires the services
// and serves the HTTP API until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/botofarm/internal/logging"
	"github.com/dmitrijs2005/botofarm/internal/server/config"
	"github.com/dmitrijs2005/botofarm/internal/server/metrics"
	"github.com/dmitrijs2005/botofarm/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/botofarm/internal/server/rest"
	"github.com/dmitrijs2005/botofarm/internal/server/services"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	accounts *services.AccountService
	leases   *services.LeaseService
	metrics  *metrics.Metrics
	registry *prometheus.Registry
}

// seams for tests
var (
	openDB = func(dsn string) (*sql.DB, error) {
		return sql.Open("pgx", dsn)
	}
	newRepoManager = repomanager.NewPostgresRepositoryManager
)

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout, c.LogLevel)

	db, err := openDB(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	db.SetMaxOpenConns(c.DBMaxOpenConns)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := newRepoManager(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repository manager error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &App{
		config:   c,
		logger:   logger,
		db:       db,
		accounts: services.NewAccountService(db, rm, logger),
		leases:   services.NewLeaseService(db, rm, clock.WallClock, logger),
		metrics:  metrics.New(registry),
		registry: registry,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) server() *rest.Server {
	opts := rest.Options{
		Address:         app.config.HTTPAddr,
		APIPrefix:       app.config.APIPrefix,
		ShutdownTimeout: app.config.ShutdownTimeout,
		Metrics:         app.metrics,
		Gatherer:        app.registry,
	}
	return rest.NewServer(opts, app.logger, app.accounts, app.leases)
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server().Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives,
// then closes the database pool.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "project", config.ProjectName, "version", config.Version)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
}
