package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/zapis-app/backend/internal/app"
	"github.com/zapis-app/backend/internal/config"
	apihttp "github.com/zapis-app/backend/internal/controller/http"
	"github.com/zapis-app/backend/internal/repository"
	"github.com/zapis-app/backend/internal/repository/base"
	"github.com/zapis-app/backend/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := app.NewPool(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	registry := prometheus.NewRegistry()
	metrics := app.NewMetrics(registry)

	txManager := base.NewTxManager(pool)
	slotRepo := repository.NewSlotRepository(pool)
	apptRepo := repository.NewAppointmentRepository(pool)
	serviceRepo := repository.NewServiceRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	linkRepo := repository.NewShareLinkRepository(pool)

	scheduleService := service.NewScheduleService(
		txManager, slotRepo, apptRepo, serviceRepo, userRepo,
		metrics, logger, cfg.DefaultSlotDurationMinutes,
	)
	catalogService := service.NewCatalogService(serviceRepo, logger)
	userService := service.NewUserService(userRepo, logger)
	linkService := service.NewLinkService(linkRepo, logger)

	router := &apihttp.Router{
		Schedule:     apihttp.NewScheduleHandler(scheduleService),
		Appointments: apihttp.NewAppointmentHandler(scheduleService, cfg.ArchiveMaxPageSize),
		Catalog:      apihttp.NewCatalogHandler(catalogService),
		Users:        apihttp.NewUserHandler(userService, linkService),
		Sessions:     userService,
		Logger:       logger,
		Metrics:      registry,
	}

	e := router.Build()

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment),
		)
		if err := e.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
