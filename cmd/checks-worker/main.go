package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/internal/notifications"
	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/pkg/config"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db"
	"github.com/omaralfarsi/fleetledger-backend/pkg/logger"
	"github.com/omaralfarsi/fleetledger-backend/pkg/metrics"
	"github.com/omaralfarsi/fleetledger-backend/pkg/migrate"
)

const (
	checkMaintenance   = "maintenance_due"
	checkProfitability = "truck_profitability"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "checks-worker"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "checks-worker",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	truckRepo := trucks.NewRepository(gormDB)
	sweepMetrics := metrics.NewCheckSweepMetrics(prometheus.DefaultRegisterer)

	notificationService, err := notifications.NewService(
		notifications.NewRepository(gormDB),
		truckRepo,
		ledger.NewRevenueRepository(gormDB),
		ledger.NewExpenseRepository(gormDB),
		sweepMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create notification service", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx = logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"interval": cfg.Checks.Interval.String(),
	})
	logg.Info(ctx, "starting checks worker")

	go serveMetrics(ctx, cfg.Checks.MetricsListenAddress, logg)

	runSweep(ctx, cfg.Checks, logg, truckRepo, notificationService, sweepMetrics)

	ticker := time.NewTicker(cfg.Checks.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logg.Info(ctx, "checks worker shutting down gracefully")
			return
		case <-ticker.C:
			runSweep(ctx, cfg.Checks, logg, truckRepo, notificationService, sweepMetrics)
		}
	}
}

// runSweep evaluates both thresholds for every truck. A failing truck does
// not stop the sweep.
func runSweep(
	ctx context.Context,
	cfg config.ChecksConfig,
	logg *logger.Logger,
	truckRepo trucks.Repository,
	svc notifications.Service,
	sweepMetrics *metrics.CheckSweepMetrics,
) {
	fleet, err := truckRepo.List(ctx)
	if err != nil {
		logg.Error(ctx, "failed to list trucks for sweep", err)
		sweepMetrics.IncFailure(checkMaintenance)
		sweepMetrics.IncFailure(checkProfitability)
		return
	}

	start := time.Now()
	for _, truck := range fleet {
		truckCtx := logg.WithTruckID(ctx, truck.ID)

		if _, err := svc.CheckMaintenanceDue(truckCtx, truck.ID, cfg.MaintenanceDays); err != nil {
			logg.Error(truckCtx, "maintenance check failed", err)
			sweepMetrics.IncFailure(checkMaintenance)
		} else {
			sweepMetrics.IncSuccess(checkMaintenance)
		}

		if _, err := svc.CheckTruckProfitability(truckCtx, truck.ID, cfg.ProfitabilityDays); err != nil {
			logg.Error(truckCtx, "profitability check failed", err)
			sweepMetrics.IncFailure(checkProfitability)
		} else {
			sweepMetrics.IncSuccess(checkProfitability)
		}
	}

	elapsed := time.Since(start)
	sweepMetrics.ObserveDuration(checkMaintenance, elapsed)
	sweepMetrics.ObserveDuration(checkProfitability, elapsed)

	doneCtx := logg.WithFields(ctx, map[string]any{
		"trucks":      len(fleet),
		"duration_ms": elapsed.Milliseconds(),
	})
	logg.Info(doneCtx, "sweep complete")
}

func serveMetrics(ctx context.Context, addr string, logg *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{Addr: addr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logg.Error(ctx, "metrics listener stopped unexpectedly", err)
	}
}
