// Package server wires configuration, storage, services and the HTTP API
// into a runnable application and owns its shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/daybook/internal/logging"
	"github.com/dmitrijs2005/daybook/internal/server/api"
	"github.com/dmitrijs2005/daybook/internal/server/config"
	"github.com/dmitrijs2005/daybook/internal/server/news"
	"github.com/dmitrijs2005/daybook/internal/server/relay"
	"github.com/dmitrijs2005/daybook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/daybook/internal/server/services"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *sql.DB
	cache        *redis.Client
	entryService *services.EntryService
	httpServer   *api.HTTPServer
}

func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.OutboundTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager(db)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	provider := news.NewProvider(c.NewsBaseURL, c.NewsAPIKey, c.OutboundTimeout)
	var feed news.Fetcher = provider
	if c.NewsCacheAddr != "" {
		app.cache = news.NewRedisClient(c.NewsCacheAddr)
		feed = news.NewCachedProvider(provider, app.cache, c.NewsCacheTTL, logger)
	}
	if !provider.Configured() {
		logger.Warn(ctx, "news API key not set, serving placeholder article")
	}

	app.entryService = services.NewEntryService(db, rm)

	svc := api.Services{
		Users:       services.NewUserService(db, rm, c),
		Entries:     app.entryService,
		Habits:      services.NewHabitService(db, rm),
		Preferences: services.NewPreferenceService(db, rm),
		Feedback:    services.NewFeedbackService(relay.New(c)),
		News:        feed,
	}

	app.httpServer = api.NewHTTPServer(c.EndpointAddrHTTP, logger, svc, api.NewMetrics(), c.MetricsPath)

	return app, nil
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// releases the database and the news cache. It returns the error that
// stopped the HTTP server, or nil on a clean shutdown.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var (
		wg      sync.WaitGroup
		httpErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		httpErr = app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.Close()
	app.logger.Info(context.Background(), "App stopped")
	return httpErr
}

// BackfillIcons assigns icons to legacy entries stored without one.
func (app *App) BackfillIcons(ctx context.Context) (int, error) {
	return app.entryService.BackfillIcons(ctx)
}

func (app *App) Close() {
	if app.cache != nil {
		if err := app.cache.Close(); err != nil {
			app.logger.Warn(context.Background(), "news cache close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(context.Background(), "db close failed", "error", err)
	}
}
