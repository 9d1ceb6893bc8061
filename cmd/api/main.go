package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"expensetracker/internal/auth"
	"expensetracker/internal/bootstrap"
	"expensetracker/internal/config"
	"expensetracker/internal/events"
	"expensetracker/internal/handlers"
	"expensetracker/internal/logger"
	"expensetracker/internal/middleware"
	"expensetracker/internal/persistence"
	"expensetracker/internal/services"
	"expensetracker/internal/state"
	"expensetracker/internal/validator"

	_ "expensetracker/internal/docs" // Import swagger docs
)

const shutdownTimeout = 10 * time.Second

// @title           Expense Tracker API
// @version         1.0
// @description     Personal finance tracker: one signed-in user records income and expenses, organises them by category and reviews date-range scoped summaries.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	storage, err := bootstrap.OpenStorage(appConfig)
	if err != nil {
		return err
	}
	defer storage.Close()

	authenticator, err := auth.NewAuthenticator(bcrypt.DefaultCost, auth.DemoCredentials()...)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}

	var publisher events.Publisher = events.NewLogPublisher()
	if appConfig.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(ctx, appConfig.AMQPURL, appConfig.AMQPExchange)
		if err != nil {
			return fmt.Errorf("failed to connect change feed: %w", err)
		}
		publisher = amqpPublisher
	}
	defer publisher.Close()

	// State container and its observers
	store := state.NewStore(state.Initial(time.Now()))
	adapter := persistence.NewAdapter(storage.Slot)
	mirror := persistence.NewMirror(adapter)
	forwarder := events.NewForwarder(publisher, events.DefaultBuffer)
	store.Subscribe(mirror.Observe)
	store.Subscribe(forwarder.Observe)

	if !bootstrap.Load(ctx, store, adapter, appConfig.SeedDemoData, time.Now()) {
		log.Info("Starting from a fresh state")
	}

	// Initialize services
	sessionService := services.NewSessionService(store, authenticator)
	transactionService := services.NewTransactionService(store)
	categoryService := services.NewCategoryService(store)
	dashboardService := services.NewDashboardService(store, appConfig.Location)
	exportService := services.NewExportService(store, appConfig.Location)
	maintenanceService := services.NewMaintenanceService(store)
	auditService := services.NewAuditService(storage.DB)

	// Initialize handlers
	tokens := middleware.NewTokenManager(appConfig.JWTSecret, appConfig.JWTExpirationDur)
	validator.Register()

	router := handlers.NewRouter(handlers.Handlers{
		Auth:         handlers.NewAuthHandler(sessionService, tokens, auditService),
		Profile:      handlers.NewProfileHandler(sessionService, dashboardService, auditService),
		Transactions: handlers.NewTransactionHandler(transactionService, auditService, appConfig.Location),
		Categories:   handlers.NewCategoryHandler(categoryService, auditService),
		Dashboard:    handlers.NewDashboardHandler(dashboardService, appConfig.Location),
		Export:       handlers.NewExportHandler(exportService, auditService),
		Admin:        handlers.NewAdminHandler(maintenanceService, sessionService, auditService),
	},
		middleware.AuthMiddleware(tokens, sessionService),
		middleware.AdminKeyMiddleware(appConfig.AdminAPIKey),
	)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The mirror and forwarder outlive the HTTP server so that changes made by
	// requests still draining during Shutdown are saved and published.
	feedCtx, stopFeeds := context.WithCancel(context.WithoutCancel(ctx))
	defer stopFeeds()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return mirror.Run(feedCtx) })
	g.Go(func() error { return forwarder.Run(feedCtx) })
	g.Go(func() error {
		log.Infof("Starting expense tracker server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		defer stopFeeds()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
