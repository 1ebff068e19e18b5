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

	billingapp "github.com/cohaus/backend/internal/application/billing"
	"github.com/cohaus/backend/internal/infrastructure/cache"
	"github.com/cohaus/backend/internal/infrastructure/config"
	"github.com/cohaus/backend/internal/infrastructure/logger"
	"github.com/cohaus/backend/internal/infrastructure/notification"
	"github.com/cohaus/backend/internal/infrastructure/persistence"
	"github.com/cohaus/backend/internal/interfaces/http/handler"
	"github.com/cohaus/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited with error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.NewForEnvironment(cfg.App.Env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer func() { _ = db.Close() }()

	// Cycle lock: Redis with in-memory fallback outside production
	lockFactory := cache.NewCycleLockFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	lock, err := lockFactory.CreateLock()
	if err != nil {
		return fmt.Errorf("failed to create cycle lock: %w", err)
	}
	defer func() { _ = lock.Close() }()

	// Repositories
	buildingRepo := persistence.NewGormBuildingRepository(db.DB)
	unitRepo := persistence.NewGormUnitRepository(db.DB)
	cycleRepo := persistence.NewGormBillingCycleRepository(db.DB)
	itemRepo := persistence.NewGormCostItemRepository(db.DB)
	chargeRepo := persistence.NewGormUnitChargeRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentStatusRepository(db.DB)

	// Notification sender
	sender := notification.NewSenderFromConfig(cfg.Notification, log)

	// Application services
	buildingService := billingapp.NewBuildingService(buildingRepo, unitRepo)
	cycleService := billingapp.NewCycleService(buildingRepo, cycleRepo, itemRepo)
	chargeService := billingapp.NewChargeService(buildingRepo, unitRepo, cycleRepo, itemRepo, chargeRepo, lock,
		billingapp.WithRecomputePolicy(billingapp.RecomputePolicy{
			BlockOnShareMismatch: cfg.Billing.BlockRecomputeOnShareMismatch,
		}),
		billingapp.WithLockTTL(cfg.Billing.CycleLockTTL),
	)
	invoiceService := billingapp.NewInvoiceService(buildingRepo, unitRepo, cycleRepo, chargeRepo, paymentRepo, sender, lock,
		billingapp.WithSendLockTTL(cfg.Billing.CycleLockTTL),
	)

	// HTTP
	engine := router.NewEngine(cfg, log)
	r := router.NewRouter(engine)
	r.Register(handler.NewSystemHandler())
	r.Register(handler.NewBuildingHandler(buildingService))
	r.Register(handler.NewCycleHandler(cycleService, chargeService))
	r.Register(handler.NewInvoiceHandler(invoiceService))
	r.Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
