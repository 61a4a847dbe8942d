package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

type truckReader interface {
	List(ctx context.Context) ([]models.Truck, error)
}

type driverReader interface {
	List(ctx context.Context) ([]models.Driver, error)
}

type shipmentReader interface {
	List(ctx context.Context) ([]models.Shipment, error)
	ListByTruckSince(ctx context.Context, truckID uint, since time.Time) ([]models.Shipment, error)
	ListByDriverSince(ctx context.Context, driverID uint, since time.Time) ([]models.Shipment, error)
}

type revenueReader interface {
	SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error)
	SumTotal(ctx context.Context, w ledger.Window) (decimal.Decimal, error)
}

type expenseReader interface {
	SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error)
	SumByDriver(ctx context.Context, driverID uint, w ledger.Window) (decimal.Decimal, error)
	SumTotal(ctx context.Context, w ledger.Window) (decimal.Decimal, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Expense, error)
}

// Service derives the fleet's financial and operational reports. Trailing
// reports take a day count and cut off only the past; the profit reports
// take an explicit inclusive range.
type Service interface {
	TruckPerformance(ctx context.Context, truckID uint, days int) (*TruckPerformance, error)
	DriverPerformance(ctx context.Context, driverID uint, days int) (*DriverPerformance, error)
	FleetEfficiency(ctx context.Context, days int) (*FleetEfficiency, error)
	ExpenseAnalysis(ctx context.Context, days int) (*ExpenseAnalysis, error)
	TruckProfit(ctx context.Context, truckID uint, start, end time.Time) (*TruckProfit, error)
	FleetSummary(ctx context.Context, start, end time.Time) (*FleetSummary, error)
	Dashboard(ctx context.Context) (*Dashboard, error)
}

type service struct {
	trucks    truckReader
	drivers   driverReader
	shipments shipmentReader
	revenues  revenueReader
	expenses  expenseReader
}

// NewService wires an analytics service with its read dependencies.
func NewService(trucks truckReader, drivers driverReader, shipments shipmentReader, revenues revenueReader, expenses expenseReader) (Service, error) {
	if trucks == nil {
		return nil, fmt.Errorf("truck reader required")
	}
	if drivers == nil {
		return nil, fmt.Errorf("driver reader required")
	}
	if shipments == nil {
		return nil, fmt.Errorf("shipment reader required")
	}
	if revenues == nil {
		return nil, fmt.Errorf("revenue reader required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense reader required")
	}
	return &service{
		trucks:    trucks,
		drivers:   drivers,
		shipments: shipments,
		revenues:  revenues,
		expenses:  expenses,
	}, nil
}

func normalizeDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return days
}

func (s *service) TruckPerformance(ctx context.Context, truckID uint, days int) (*TruckPerformance, error) {
	days = normalizeDays(days)
	return s.truckPerformanceAt(ctx, truckID, days, timeNowUTC())
}

func (s *service) truckPerformanceAt(ctx context.Context, truckID uint, days int, now time.Time) (*TruckPerformance, error) {
	window := ledger.SinceDays(now, days)

	shipments, err := s.shipments.ListByTruckSince(ctx, truckID, *window.Start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list truck shipments")
	}
	delivered := 0
	for _, shipment := range shipments {
		if shipment.Status == enums.ShipmentStatusDelivered {
			delivered++
		}
	}

	revenue, err := s.revenues.SumByTruck(ctx, truckID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck revenue")
	}
	expenses, err := s.expenses.SumByTruck(ctx, truckID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck expenses")
	}
	profit := revenue.Sub(expenses)

	metrics := &TruckPerformance{
		TruckID:               truckID,
		PeriodDays:            days,
		TotalShipments:        len(shipments),
		DeliveredShipments:    delivered,
		TotalRevenue:          revenue,
		TotalExpenses:         expenses,
		Profit:                profit,
		AvgRevenuePerShipment: decimal.Zero,
	}
	if len(shipments) > 0 {
		metrics.DeliveryRate = float64(delivered) / float64(len(shipments)) * 100
		metrics.AvgRevenuePerShipment = revenue.Div(decimal.NewFromInt(int64(len(shipments))))
	}
	if revenue.IsPositive() {
		metrics.ProfitabilityRate = profit.Div(revenue).InexactFloat64() * 100
	}
	return metrics, nil
}

func (s *service) DriverPerformance(ctx context.Context, driverID uint, days int) (*DriverPerformance, error) {
	days = normalizeDays(days)
	now := timeNowUTC()
	window := ledger.SinceDays(now, days)

	shipments, err := s.shipments.ListByDriverSince(ctx, driverID, *window.Start)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list driver shipments")
	}

	delivered := 0
	totalRevenue := decimal.Zero
	for _, shipment := range shipments {
		if shipment.Status == enums.ShipmentStatusDelivered {
			delivered++
		}
		totalRevenue = totalRevenue.Add(shipment.Revenue)
	}

	expenses, err := s.expenses.SumByDriver(ctx, driverID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum driver expenses")
	}

	metrics := &DriverPerformance{
		DriverID:           driverID,
		PeriodDays:         days,
		TotalShipments:     len(shipments),
		DeliveredShipments: delivered,
		TotalRevenue:       totalRevenue,
		TotalExpenses:      expenses,
		NetContribution:    totalRevenue.Sub(expenses),
	}
	if len(shipments) > 0 {
		metrics.DeliveryRate = float64(delivered) / float64(len(shipments)) * 100
	}
	return metrics, nil
}

func (s *service) FleetEfficiency(ctx context.Context, days int) (*FleetEfficiency, error) {
	days = normalizeDays(days)
	now := timeNowUTC()

	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trucks")
	}

	report := &FleetEfficiency{
		PeriodDays:    days,
		TotalTrucks:   len(trucks),
		TrucksMetrics: make([]TruckPerformance, 0, len(trucks)),
		FleetSummary: FleetSummaryStats{
			TotalRevenue:  decimal.Zero,
			TotalExpenses: decimal.Zero,
			TotalProfit:   decimal.Zero,
		},
	}

	sumProfitability := 0.0
	sumDeliveryRate := 0.0
	for _, truck := range trucks {
		metrics, err := s.truckPerformanceAt(ctx, truck.ID, days, now)
		if err != nil {
			return nil, err
		}
		report.TrucksMetrics = append(report.TrucksMetrics, *metrics)
		report.FleetSummary.TotalRevenue = report.FleetSummary.TotalRevenue.Add(metrics.TotalRevenue)
		report.FleetSummary.TotalExpenses = report.FleetSummary.TotalExpenses.Add(metrics.TotalExpenses)
		sumProfitability += metrics.ProfitabilityRate
		sumDeliveryRate += metrics.DeliveryRate
	}

	report.FleetSummary.TotalProfit = report.FleetSummary.TotalRevenue.Sub(report.FleetSummary.TotalExpenses)
	if len(trucks) > 0 {
		report.FleetSummary.AvgProfitabilityRate = sumProfitability / float64(len(trucks))
		report.FleetSummary.AvgDeliveryRate = sumDeliveryRate / float64(len(trucks))
	}
	return report, nil
}

func (s *service) ExpenseAnalysis(ctx context.Context, days int) (*ExpenseAnalysis, error) {
	days = normalizeDays(days)
	since := timeNowUTC().AddDate(0, 0, -days)

	expenses, err := s.expenses.ListSince(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}

	analysis := &ExpenseAnalysis{
		PeriodDays:      days,
		TotalExpenses:   decimal.Zero,
		ExpensesByType:  map[enums.ExpenseType]decimal.Decimal{},
		ExpensesByTruck: map[uint]decimal.Decimal{},
	}
	for _, expense := range expenses {
		analysis.TotalExpenses = analysis.TotalExpenses.Add(expense.Amount)
		analysis.ExpensesByType[expense.ExpenseType] = analysis.ExpensesByType[expense.ExpenseType].Add(expense.Amount)
		analysis.ExpensesByTruck[expense.TruckID] = analysis.ExpensesByTruck[expense.TruckID].Add(expense.Amount)
	}
	return analysis, nil
}

func (s *service) TruckProfit(ctx context.Context, truckID uint, start, end time.Time) (*TruckProfit, error) {
	window := ledger.Between(start, end)

	revenue, err := s.revenues.SumByTruck(ctx, truckID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck revenue")
	}
	expenses, err := s.expenses.SumByTruck(ctx, truckID, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck expenses")
	}

	return &TruckProfit{
		TruckID:   truckID,
		Revenue:   revenue,
		Expenses:  expenses,
		Profit:    revenue.Sub(expenses),
		StartDate: start.Format(time.RFC3339),
		EndDate:   end.Format(time.RFC3339),
	}, nil
}

func (s *service) FleetSummary(ctx context.Context, start, end time.Time) (*FleetSummary, error) {
	window := ledger.Between(start, end)

	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trucks")
	}

	summary := &FleetSummary{
		Trucks:        make([]FleetSummaryRow, 0, len(trucks)),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
		StartDate:     start.Format(time.RFC3339),
		EndDate:       end.Format(time.RFC3339),
	}

	for _, truck := range trucks {
		revenue, err := s.revenues.SumByTruck(ctx, truck.ID, window)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck revenue")
		}
		expenses, err := s.expenses.SumByTruck(ctx, truck.ID, window)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck expenses")
		}

		summary.Trucks = append(summary.Trucks, FleetSummaryRow{
			Truck:    truck,
			Revenue:  revenue,
			Expenses: expenses,
			Profit:   revenue.Sub(expenses),
		})
		summary.TotalRevenue = summary.TotalRevenue.Add(revenue)
		summary.TotalExpenses = summary.TotalExpenses.Add(expenses)
	}

	summary.TotalProfit = summary.TotalRevenue.Sub(summary.TotalExpenses)
	return summary, nil
}

func (s *service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := timeNowUTC()

	trucks, err := s.trucks.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trucks")
	}
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drivers")
	}
	shipments, err := s.shipments.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipments")
	}

	dashboard := &Dashboard{}
	dashboard.Trucks.Total = len(trucks)
	for _, truck := range trucks {
		switch truck.Status {
		case enums.TruckStatusActive:
			dashboard.Trucks.Active++
		case enums.TruckStatusMaintenance:
			dashboard.Trucks.Maintenance++
		}
	}
	dashboard.Trucks.Stopped = dashboard.Trucks.Total - dashboard.Trucks.Active - dashboard.Trucks.Maintenance

	dashboard.Drivers.Total = len(drivers)
	for _, driver := range drivers {
		if driver.Status == enums.DriverStatusActive {
			dashboard.Drivers.Active++
		}
	}

	dashboard.Shipments.Total = len(shipments)
	for _, shipment := range shipments {
		switch shipment.Status {
		case enums.ShipmentStatusPending:
			dashboard.Shipments.Pending++
		case enums.ShipmentStatusInTransit:
			dashboard.Shipments.InTransit++
		case enums.ShipmentStatusDelivered:
			dashboard.Shipments.Delivered++
		}
	}

	window := ledger.SinceDays(now, DefaultWindowDays)
	revenue, err := s.revenues.SumTotal(ctx, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}
	expenses, err := s.expenses.SumTotal(ctx, window)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum expenses")
	}
	dashboard.Financials = DashboardFinancials{
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   revenue.Sub(expenses),
	}
	return dashboard, nil
}
