package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// DefaultWindowDays is the trailing window applied when a report is asked
// for without an explicit period.
const DefaultWindowDays = 30

// TruckPerformance is one truck's trailing-window scorecard.
type TruckPerformance struct {
	TruckID               uint            `json:"truck_id"`
	PeriodDays            int             `json:"period_days"`
	TotalShipments        int             `json:"total_shipments"`
	DeliveredShipments    int             `json:"delivered_shipments"`
	DeliveryRate          float64         `json:"delivery_rate"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	TotalExpenses         decimal.Decimal `json:"total_expenses"`
	Profit                decimal.Decimal `json:"profit"`
	ProfitabilityRate     float64         `json:"profitability_rate"`
	AvgRevenuePerShipment decimal.Decimal `json:"avg_revenue_per_shipment"`
}

// DriverPerformance is one driver's trailing-window scorecard. Revenue here
// comes off the shipment rows themselves, not the revenues ledger, so a
// driver is measured by the freight they hauled even before the money is
// booked.
type DriverPerformance struct {
	DriverID           uint            `json:"driver_id"`
	PeriodDays         int             `json:"period_days"`
	TotalShipments     int             `json:"total_shipments"`
	DeliveredShipments int             `json:"delivered_shipments"`
	DeliveryRate       float64         `json:"delivery_rate"`
	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalExpenses      decimal.Decimal `json:"total_expenses"`
	NetContribution    decimal.Decimal `json:"net_contribution"`
}

// FleetSummaryStats aggregates the per-truck scorecards.
type FleetSummaryStats struct {
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
	TotalExpenses        decimal.Decimal `json:"total_expenses"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	AvgProfitabilityRate float64         `json:"avg_profitability_rate"`
	AvgDeliveryRate      float64         `json:"avg_delivery_rate"`
}

// FleetEfficiency is the whole-fleet scorecard report.
type FleetEfficiency struct {
	PeriodDays    int                `json:"period_days"`
	TotalTrucks   int                `json:"total_trucks"`
	TrucksMetrics []TruckPerformance `json:"trucks_metrics"`
	FleetSummary  FleetSummaryStats  `json:"fleet_summary"`
}

// ExpenseAnalysis groups trailing-window expenses by type and by truck.
type ExpenseAnalysis struct {
	PeriodDays      int                                   `json:"period_days"`
	TotalExpenses   decimal.Decimal                       `json:"total_expenses"`
	ExpensesByType  map[enums.ExpenseType]decimal.Decimal `json:"expenses_by_type"`
	ExpensesByTruck map[uint]decimal.Decimal              `json:"expenses_by_truck"`
}

// TruckProfit is one truck's profit over an explicit inclusive date range.
type TruckProfit struct {
	TruckID   uint            `json:"truck_id"`
	Revenue   decimal.Decimal `json:"revenue"`
	Expenses  decimal.Decimal `json:"expenses"`
	Profit    decimal.Decimal `json:"profit"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
}

// FleetSummaryRow is one truck's line in the fleet summary report.
type FleetSummaryRow struct {
	Truck    models.Truck    `json:"truck"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// FleetSummary is the per-truck profit report over an explicit range.
type FleetSummary struct {
	Trucks        []FleetSummaryRow `json:"trucks"`
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	TotalExpenses decimal.Decimal   `json:"total_expenses"`
	TotalProfit   decimal.Decimal   `json:"total_profit"`
	StartDate     string            `json:"start_date"`
	EndDate       string            `json:"end_date"`
}

// Dashboard is the landing-page counters block.
type Dashboard struct {
	Trucks     DashboardTrucks     `json:"trucks"`
	Drivers    DashboardDrivers    `json:"drivers"`
	Shipments  DashboardShipments  `json:"shipments"`
	Financials DashboardFinancials `json:"financials"`
}

type DashboardTrucks struct {
	Total       int `json:"total"`
	Active      int `json:"active"`
	Maintenance int `json:"maintenance"`
	Stopped     int `json:"stopped"`
}

type DashboardDrivers struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

type DashboardShipments struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	InTransit int `json:"in_transit"`
	Delivered int `json:"delivered"`
}

type DashboardFinancials struct {
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}
