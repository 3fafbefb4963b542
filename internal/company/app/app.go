package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/LofoWalker/upkeep/internal/company/http"
	"github.com/LofoWalker/upkeep/internal/company/notify"
	"github.com/LofoWalker/upkeep/internal/company/service"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/internal/company/store/drivers/postgres"
	"github.com/LofoWalker/upkeep/internal/company/store/drivers/sqlite"
	"github.com/LofoWalker/upkeep/pkg/jwtx"
	"github.com/LofoWalker/upkeep/pkg/otelx"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

const serviceName = "upkeep"

// setupTracing is swapped in tests.
var setupTracing = otelx.Setup

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application wires the company access service together.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db           store.Store
	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	refresher    *jwtx.Refresher // nil without a JWKS URL
	smtp         *notify.SMTPNotifier
	notifier     notify.Notifier
	otelShutdown func(context.Context) error

	customerService   *service.CustomerService
	companyService    *service.CompanyService
	membershipService *service.MembershipService
	invitationService *service.InvitationService
	sweeper           *service.InvitationSweeper // nil when disabled

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: serviceName,
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	ctx := context.Background()

	shutdown, err := setupTracing(ctx, serviceName, BuildVersion, cfg.OTLPEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	app.otelShutdown = shutdown

	if err := app.initDatabase(ctx); err != nil {
		app.flushTraces()
		return nil, err
	}

	keys, verifier, refresher, err := InitVerifier(ctx, cfg, app.logger)
	if err != nil {
		_ = app.db.Close()
		app.flushTraces()
		return nil, fmt.Errorf("failed to initialize token verification: %w", err)
	}
	app.keys, app.verifier, app.refresher = keys, verifier, refresher

	app.initNotifier()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	if app.smtp != nil {
		app.smtp.Start()
	}
	if app.refresher != nil {
		app.refresher.Start()
	}
	if app.sweeper != nil {
		app.sweeper.Start()
	}

	app.logger.Info("upkeep starting",
		"port", app.cfg.Port,
		"version", BuildVersion,
		"db_driver", app.cfg.DBDriver,
		"notifier", app.cfg.Notifier,
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown stops the server first, then the background workers, then
// closes the database.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down upkeep...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.sweeper != nil {
		app.sweeper.Stop()
	}
	if app.refresher != nil {
		app.refresher.Stop()
	}
	if app.smtp != nil {
		app.smtp.Stop()
	}

	app.shutdownTracing(ctx)

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("upkeep stopped")
	return nil
}

// flushTraces shuts the tracer provider down after a failed start.
func (app *Application) flushTraces() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	app.shutdownTracing(ctx)
}

func (app *Application) shutdownTracing(ctx context.Context) {
	if err := app.otelShutdown(ctx); err != nil {
		app.logger.Error("error flushing traces", "error", err)
	}
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		err error
	)
	switch app.cfg.DBDriver {
	case "postgres":
		db, err = postgres.NewStore(ctx, app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(sqlite.FileDSN(app.cfg.DatabaseFile))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DBDriver)
	return nil
}

func (app *Application) initNotifier() {
	if app.cfg.Notifier != "smtp" {
		app.notifier = notify.LogNotifier{}
		return
	}

	app.smtp = notify.NewSMTPNotifier(notify.SMTPConfig{
		Host:      app.cfg.SMTPHost,
		Port:      app.cfg.SMTPPort,
		User:      app.cfg.SMTPUser,
		Password:  app.cfg.SMTPPassword,
		From:      app.cfg.SMTPFrom,
		PublicURL: app.cfg.PublicURL,
	}, app.logger)
	app.notifier = app.smtp
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.customerService = &service.CustomerService{Store: app.db, Notifier: app.notifier}
	app.companyService = &service.CompanyService{Store: app.db}
	app.membershipService = &service.MembershipService{Store: app.db}
	app.invitationService = &service.InvitationService{Store: app.db, Notifier: app.notifier}

	if app.cfg.SweepInterval > 0 {
		app.sweeper = service.NewInvitationSweeper(app.db, app.logger, app.cfg.SweepInterval)
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.keys,
		app.verifier,
		BuildVersion,
		app.db,
		app.logger,
	)

	router.CustomerService = app.customerService
	router.CompanyService = app.companyService
	router.MembershipService = app.membershipService
	router.InvitationService = app.invitationService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
