package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/mamadbah2/goatherd/internal/config"
	"github.com/mamadbah2/goatherd/internal/metrics"
	"github.com/mamadbah2/goatherd/internal/repository/mongodb"
	"github.com/mamadbah2/goatherd/internal/repository/sheets"
	"github.com/mamadbah2/goatherd/internal/scheduler"
	"github.com/mamadbah2/goatherd/internal/server/handlers"
	"github.com/mamadbah2/goatherd/internal/server/router"
	commandsvc "github.com/mamadbah2/goatherd/internal/service/commands"
	reportingsvc "github.com/mamadbah2/goatherd/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/goatherd/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/goatherd/pkg/clients/whatsapp"
	"github.com/mamadbah2/goatherd/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, false, baseLogger.Named("repo.sheets"))
	if err != nil {
		baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
	}
	snapshots := sheets.NewSnapshotLoader(sheetsRepo, baseLogger.Named("repo.snapshot"))

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	reportingSvc := reportingsvc.NewService(snapshots, mongoRepo, cfg.Herd, collector, baseLogger.Named("svc.reporting"))
	commandDispatcher := commandsvc.NewService(reportingSvc, baseLogger.Named("svc.commands"))

	whatsClient := whatsappclient.NewClient(cfg.WhatsApp)
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))

	engine := router.New(
		handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp")),
		handlers.NewHerdHandler(reportingSvc, baseLogger.Named("handlers.herd")),
		registry,
		baseLogger.Named("router"),
	)

	sched, err := scheduler.NewScheduler(*cfg, reportingSvc, sheetsRepo, messagingSvc, baseLogger.Named("scheduler"))
	if err != nil {
		baseLogger.Fatal("failed to init scheduler", zap.Error(err))
	}
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
