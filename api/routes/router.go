package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omaralfarsi/fleetledger-backend/api/controllers"
	"github.com/omaralfarsi/fleetledger-backend/api/middleware"
	"github.com/omaralfarsi/fleetledger-backend/internal/accounts"
	"github.com/omaralfarsi/fleetledger-backend/internal/analytics"
	"github.com/omaralfarsi/fleetledger-backend/internal/auth"
	"github.com/omaralfarsi/fleetledger-backend/internal/drivers"
	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/internal/maintenance"
	"github.com/omaralfarsi/fleetledger-backend/internal/notifications"
	"github.com/omaralfarsi/fleetledger-backend/internal/shipments"
	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/pkg/auth/session"
	"github.com/omaralfarsi/fleetledger-backend/pkg/config"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db"
	"github.com/omaralfarsi/fleetledger-backend/pkg/logger"
	"github.com/omaralfarsi/fleetledger-backend/pkg/redis"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth          auth.Service
	Trucks        trucks.Service
	Drivers       drivers.Service
	Shipments     shipments.Service
	Ledger        ledger.Service
	Maintenance   maintenance.Service
	Accounts      accounts.Service
	Analytics     analytics.Service
	Notifications notifications.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(svcs.Auth, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, sessions, logg))
			r.Post("/register", controllers.AuthRegister(svcs.Auth, logg))
			r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))

		r.Route("/trucks", func(r chi.Router) {
			r.Get("/", controllers.ListTrucks(svcs.Trucks, logg))
			r.Post("/", controllers.CreateTruck(svcs.Trucks, logg))
			r.Get("/{truckId}", controllers.GetTruck(svcs.Trucks, logg))
			r.Put("/{truckId}", controllers.UpdateTruck(svcs.Trucks, logg))
			r.Delete("/{truckId}", controllers.DeleteTruck(svcs.Trucks, logg))

			r.Post("/{truckId}/check-maintenance", controllers.CheckTruckMaintenance(svcs.Notifications, logg))
			r.Post("/{truckId}/check-profitability", controllers.CheckTruckProfitability(svcs.Notifications, logg))
		})

		r.Route("/drivers", func(r chi.Router) {
			r.Get("/", controllers.ListDrivers(svcs.Drivers, logg))
			r.Post("/", controllers.CreateDriver(svcs.Drivers, logg))
			r.Get("/{driverId}", controllers.GetDriver(svcs.Drivers, logg))
			r.Put("/{driverId}", controllers.UpdateDriver(svcs.Drivers, logg))
			r.Delete("/{driverId}", controllers.DeleteDriver(svcs.Drivers, logg))
		})

		r.Route("/shipments", func(r chi.Router) {
			r.Get("/", controllers.ListShipments(svcs.Shipments, logg))
			r.Post("/", controllers.CreateShipment(svcs.Shipments, logg))
			r.Get("/{shipmentId}", controllers.GetShipment(svcs.Shipments, logg))
			r.Put("/{shipmentId}", controllers.UpdateShipment(svcs.Shipments, logg))
		})

		r.Route("/revenues", func(r chi.Router) {
			r.Get("/", controllers.ListRevenues(svcs.Ledger, logg))
			r.Post("/", controllers.CreateRevenue(svcs.Ledger, logg))
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", controllers.ListExpenses(svcs.Ledger, logg))
			r.Post("/", controllers.CreateExpense(svcs.Ledger, logg))
		})

		r.Route("/maintenance", func(r chi.Router) {
			r.Get("/", controllers.ListMaintenanceRecords(svcs.Maintenance, logg))
			r.Post("/", controllers.CreateMaintenanceRecord(svcs.Maintenance, logg))
		})

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(svcs.Notifications, logg))
			r.Get("/unread", controllers.UnreadNotifications(svcs.Notifications, logg))
			r.Put("/{notificationId}/read", controllers.MarkNotificationRead(svcs.Notifications, logg))
			r.Delete("/{notificationId}", controllers.DeleteNotification(svcs.Notifications, logg))
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/drivers", controllers.AllDriversAccounts(svcs.Accounts, logg))
			r.Get("/drivers/summary", controllers.DriversSummary(svcs.Accounts, logg))
			r.Get("/drivers/{driverId}", controllers.DriverAccount(svcs.Accounts, logg))
			r.Get("/drivers/{driverId}/details", controllers.DriverAccountDetails(svcs.Accounts, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/trucks/{truckId}/performance", controllers.TruckPerformance(svcs.Analytics, logg))
			r.Get("/trucks/{truckId}/profit", controllers.TruckProfit(svcs.Analytics, logg))
			r.Get("/drivers/{driverId}/performance", controllers.DriverPerformance(svcs.Analytics, logg))
			r.Get("/fleet-efficiency", controllers.FleetEfficiency(svcs.Analytics, logg))
			r.Get("/fleet-summary", controllers.FleetSummary(svcs.Analytics, logg))
			r.Get("/expense-analysis", controllers.ExpenseAnalysis(svcs.Analytics, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(svcs.Analytics, logg))
	})

	return r
}
