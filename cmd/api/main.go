package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/omaralfarsi/fleetledger-backend/api/routes"
	"github.com/omaralfarsi/fleetledger-backend/internal/accounts"
	"github.com/omaralfarsi/fleetledger-backend/internal/analytics"
	"github.com/omaralfarsi/fleetledger-backend/internal/auth"
	"github.com/omaralfarsi/fleetledger-backend/internal/drivers"
	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/internal/maintenance"
	"github.com/omaralfarsi/fleetledger-backend/internal/notifications"
	"github.com/omaralfarsi/fleetledger-backend/internal/shipments"
	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/internal/users"
	"github.com/omaralfarsi/fleetledger-backend/pkg/auth/session"
	"github.com/omaralfarsi/fleetledger-backend/pkg/config"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db"
	"github.com/omaralfarsi/fleetledger-backend/pkg/logger"
	"github.com/omaralfarsi/fleetledger-backend/pkg/migrate"
	"github.com/omaralfarsi/fleetledger-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
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

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	truckRepo := trucks.NewRepository(gormDB)
	driverRepo := drivers.NewRepository(gormDB)
	shipmentRepo := shipments.NewRepository(gormDB)
	revenueRepo := ledger.NewRevenueRepository(gormDB)
	expenseRepo := ledger.NewExpenseRepository(gormDB)
	maintenanceRepo := maintenance.NewRepository(gormDB)
	notificationRepo := notifications.NewRepository(gormDB)
	userRepo := users.NewRepository(gormDB)

	svcs, err := buildServices(serviceDeps{
		cfg:              cfg,
		db:               dbClient,
		sessions:         sessionManager,
		truckRepo:        truckRepo,
		driverRepo:       driverRepo,
		shipmentRepo:     shipmentRepo,
		revenueRepo:      revenueRepo,
		expenseRepo:      expenseRepo,
		maintenanceRepo:  maintenanceRepo,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to build services", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

type serviceDeps struct {
	cfg              *config.Config
	db               *db.Client
	sessions         *session.Manager
	truckRepo        trucks.Repository
	driverRepo       drivers.Repository
	shipmentRepo     shipments.Repository
	revenueRepo      ledger.RevenueRepository
	expenseRepo      ledger.ExpenseRepository
	maintenanceRepo  maintenance.Repository
	notificationRepo notifications.Repository
	userRepo         users.Repository
}

func buildServices(deps serviceDeps) (routes.Services, error) {
	var svcs routes.Services
	var err error

	if svcs.Auth, err = auth.NewService(auth.ServiceParams{
		UserRepo:       deps.userRepo,
		SessionManager: deps.sessions,
		JWTConfig:      deps.cfg.JWT,
		PasswordConfig: deps.cfg.Password,
	}); err != nil {
		return svcs, err
	}
	if svcs.Trucks, err = trucks.NewService(deps.truckRepo); err != nil {
		return svcs, err
	}
	if svcs.Drivers, err = drivers.NewService(deps.driverRepo); err != nil {
		return svcs, err
	}
	if svcs.Shipments, err = shipments.NewService(deps.shipmentRepo, deps.truckRepo, deps.db); err != nil {
		return svcs, err
	}
	if svcs.Ledger, err = ledger.NewService(deps.revenueRepo, deps.expenseRepo); err != nil {
		return svcs, err
	}
	if svcs.Maintenance, err = maintenance.NewService(deps.maintenanceRepo, deps.truckRepo, deps.expenseRepo, deps.db); err != nil {
		return svcs, err
	}
	if svcs.Accounts, err = accounts.NewService(deps.driverRepo, deps.shipmentRepo, deps.expenseRepo); err != nil {
		return svcs, err
	}
	if svcs.Analytics, err = analytics.NewService(deps.truckRepo, deps.driverRepo, deps.shipmentRepo, deps.revenueRepo, deps.expenseRepo); err != nil {
		return svcs, err
	}
	if svcs.Notifications, err = notifications.NewService(deps.notificationRepo, deps.truckRepo, deps.revenueRepo, deps.expenseRepo, nil); err != nil {
		return svcs, err
	}
	return svcs, nil
}
