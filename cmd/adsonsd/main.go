package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/reports"
	"github.com/zubbicodes/adsonsLab/internal/repository"
	"github.com/zubbicodes/adsonsLab/internal/server"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repository.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repository.Close(db, logger)

	if err := repository.Migrate(ctx, db, logger); err != nil {
		logger.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}
	if err := repository.HealthCheck(ctx, db, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	products := repository.NewProductRepository(db, logger)
	papers := repository.NewPaperRepository(db, logger)
	reportsRepo := repository.NewReportRepository(db, logger)
	reporter := reports.NewService(products, reportsRepo, logger)

	srv := server.New(logger, products, papers, reportsRepo, reporter)

	go func() {
		if err := srv.Start(cfg.Server.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
	logger.Info("stopped")
}
