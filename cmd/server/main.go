package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"faultline/internal/background"
	"faultline/internal/capture"
	"faultline/internal/config"
	apphttp "faultline/internal/http"
	"faultline/internal/registry"
	"faultline/internal/repository/sqlite"
	"faultline/internal/simulator"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	reportRepo := sqlite.NewReportRepository(db)
	if err := reportRepo.Init(ctx); err != nil {
		logger.Fatalf("init report repository: %v", err)
	}

	promRegistry := prometheus.NewRegistry()
	sink := capture.NewSink(logger, reportRepo, promRegistry)
	bridge := background.NewBridge(logger, sink)
	sims := simulator.New(cfg, logger)
	catalog := registry.Default()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(capture.Middleware(sink))
	handler := apphttp.NewHandler(
		catalog,
		sims,
		bridge,
		reportRepo,
		promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}),
		logger,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s, %d faults ready to trigger", cfg.Server.Addr, len(catalog.List()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}
	bridge.Shutdown()

	logger.Info("bye")
}
