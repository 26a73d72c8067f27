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

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"warehouse/cmd"
	"warehouse/internal/adapters/in/seed"
	"warehouse/internal/adapters/out/storage"
	"warehouse/internal/pkg/logger"
	"warehouse/internal/pkg/metrics"
	"warehouse/internal/pkg/tracing"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	appLogger, err := logger.New(configs.AppEnv)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, appLogger); err != nil {
		appLogger.Error("Warehouse stopped with error", "error", err)
		appLogger.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, appLogger *logger.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, appLogger, tracing.Config{
		Enabled:     configs.TracingEnabled,
		ServiceName: "warehouse",
		Environment: configs.AppEnv,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			appLogger.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	gormDB, err := storage.Open(configs.Storage(), appLogger)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if configs.ResetOnStart {
		if err = storage.Reset(gormDB); err != nil {
			return err
		}
	}
	if err = storage.Migrate(gormDB); err != nil {
		return err
	}

	app := cmd.NewCompositionRoot(configs, gormDB, appLogger, metrics.New())

	if configs.SeedOnStart {
		dataset, err := seed.Demo()
		if err != nil {
			return err
		}
		seeder := app.CreateSeeder()
		if _, err = seeder.Seed(ctx, dataset); err != nil {
			return err
		}
	}

	printer := app.CreateReportPrinter()
	if err = printer.Print(ctx, os.Stdout); err != nil {
		return fmt.Errorf("print reports: %w", err)
	}

	if !configs.HTTPEnabled {
		return nil
	}
	return serve(ctx, app, configs.HTTPPort, appLogger)
}

func serve(ctx context.Context, app cmd.CompositionRoot, port string, appLogger *logger.Logger) error {
	router, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", port)
		appLogger.Info("HTTP server listening", "addr", addr)
		if err := router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		jobManager.StopAll(shutdownCtx)
		appLogger.Info("HTTP server shutting down")
		return router.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
