package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

// AccountStatus classifies a settlement balance.
type AccountStatus string

const (
	// AccountStatusCreditor means the company owes the driver.
	AccountStatusCreditor AccountStatus = "creditor"
	// AccountStatusDebtor means the driver owes the company.
	AccountStatusDebtor AccountStatus = "debtor"
	// AccountStatusBalanced means the account settles to exactly zero.
	AccountStatusBalanced AccountStatus = "balanced"
)

type driverReader interface {
	FindByID(ctx context.Context, id uint) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
}

type shipmentReader interface {
	ListByDriver(ctx context.Context, driverID uint) ([]models.Shipment, error)
}

type expenseReader interface {
	ListByDriver(ctx context.Context, driverID uint) ([]models.Expense, error)
	SumByDriver(ctx context.Context, driverID uint, w ledger.Window) (decimal.Decimal, error)
	SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error)
}

// Service computes driver settlement accounts. A driver's balance covers
// their whole history: shipment revenue earned minus the base salary and the
// expenses booked against them personally. Expenses booked against the
// assigned truck are reported alongside, but never subtracted.
type Service interface {
	ComputeDriverAccount(ctx context.Context, driverID uint) (*DriverAccount, error)
	DriverAccountDetails(ctx context.Context, driverID uint) (*DriverAccountDetails, error)
	AllDriversAccounts(ctx context.Context) ([]DriverAccount, error)
	DriversSummary(ctx context.Context) (*DriversSummary, error)
}

type service struct {
	drivers   driverReader
	shipments shipmentReader
	expenses  expenseReader
}

// NewService wires an account service with its read dependencies.
func NewService(drivers driverReader, shipments shipmentReader, expenses expenseReader) (Service, error) {
	if drivers == nil {
		return nil, fmt.Errorf("driver reader required")
	}
	if shipments == nil {
		return nil, fmt.Errorf("shipment reader required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense reader required")
	}
	return &service{drivers: drivers, shipments: shipments, expenses: expenses}, nil
}

// DriverAccount is one driver's settlement statement.
type DriverAccount struct {
	DriverID       uint            `json:"driver_id"`
	DriverName     string          `json:"driver_name"`
	PhoneNumber    string          `json:"phone_number"`
	TruckID        *uint           `json:"truck_id"`
	Salary         decimal.Decimal `json:"salary"`
	ShipmentCount  int             `json:"shipment_count"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	DriverExpenses decimal.Decimal `json:"driver_expenses"`
	TruckExpenses  decimal.Decimal `json:"truck_expenses"`
	TotalExpenses  decimal.Decimal `json:"total_expenses"`
	Balance        decimal.Decimal `json:"balance"`
	AccountStatus  AccountStatus   `json:"account_status"`
	IsActive       bool            `json:"is_active"`
}

// ShipmentEntry is one shipment line on a detailed statement.
type ShipmentEntry struct {
	ID      uint                 `json:"id"`
	From    string               `json:"from"`
	To      string               `json:"to"`
	Cargo   string               `json:"cargo"`
	Revenue decimal.Decimal      `json:"revenue"`
	Status  enums.ShipmentStatus `json:"status"`
	Date    string               `json:"date"`
}

// ExpenseEntry is one expense line on a detailed statement.
type ExpenseEntry struct {
	ID          uint              `json:"id"`
	Type        enums.ExpenseType `json:"type"`
	Amount      decimal.Decimal   `json:"amount"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
}

// DriverAccountDetails is the statement plus its underlying rows.
type DriverAccountDetails struct {
	Account   *DriverAccount  `json:"account"`
	Shipments []ShipmentEntry `json:"shipments"`
	Expenses  []ExpenseEntry  `json:"expenses"`
}

// DriversSummary aggregates every driver's statement.
type DriversSummary struct {
	TotalDrivers    int             `json:"total_drivers"`
	ActiveDrivers   int             `json:"active_drivers"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalExpenses   decimal.Decimal `json:"total_expenses"`
	TotalBalance    decimal.Decimal `json:"total_balance"`
	CreditorDrivers int             `json:"creditor_drivers"`
	DebtorDrivers   int             `json:"debtor_drivers"`
	Drivers         []DriverAccount `json:"drivers"`
}

func (s *service) ComputeDriverAccount(ctx context.Context, driverID uint) (*DriverAccount, error) {
	driver, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "driver not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver")
	}
	return s.computeAccount(ctx, driver)
}

func (s *service) computeAccount(ctx context.Context, driver *models.Driver) (*DriverAccount, error) {
	shipments, err := s.shipments.ListByDriver(ctx, driver.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list driver shipments")
	}

	totalRevenue := decimal.Zero
	for _, shipment := range shipments {
		totalRevenue = totalRevenue.Add(shipment.Revenue)
	}

	driverExpenses, err := s.expenses.SumByDriver(ctx, driver.ID, ledger.Window{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum driver expenses")
	}

	// Truck expenses are informational only; the driver does not answer
	// for what the vehicle costs the company.
	truckExpenses := decimal.Zero
	if driver.TruckID != nil {
		truckExpenses, err = s.expenses.SumByTruck(ctx, *driver.TruckID, ledger.Window{})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck expenses")
		}
	}

	balance := totalRevenue.Sub(driver.Salary.Add(driverExpenses))

	status := AccountStatusBalanced
	switch {
	case balance.IsPositive():
		status = AccountStatusCreditor
	case balance.IsNegative():
		status = AccountStatusDebtor
	}

	return &DriverAccount{
		DriverID:       driver.ID,
		DriverName:     driver.Name,
		PhoneNumber:    driver.PhoneNumber,
		TruckID:        driver.TruckID,
		Salary:         driver.Salary,
		ShipmentCount:  len(shipments),
		TotalRevenue:   totalRevenue,
		DriverExpenses: driverExpenses,
		TruckExpenses:  truckExpenses,
		TotalExpenses:  driverExpenses.Add(truckExpenses),
		Balance:        balance,
		AccountStatus:  status,
		IsActive:       driver.Status == enums.DriverStatusActive,
	}, nil
}

func (s *service) DriverAccountDetails(ctx context.Context, driverID uint) (*DriverAccountDetails, error) {
	account, err := s.ComputeDriverAccount(ctx, driverID)
	if err != nil {
		return nil, err
	}

	shipments, err := s.shipments.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list driver shipments")
	}
	shipmentEntries := make([]ShipmentEntry, 0, len(shipments))
	for _, shipment := range shipments {
		shipmentEntries = append(shipmentEntries, ShipmentEntry{
			ID:      shipment.ID,
			From:    shipment.FromLocation,
			To:      shipment.ToLocation,
			Cargo:   shipment.Cargo,
			Revenue: shipment.Revenue,
			Status:  shipment.Status,
			Date:    shipment.ShipmentDate.Format(time.RFC3339),
		})
	}

	expenses, err := s.expenses.ListByDriver(ctx, driverID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list driver expenses")
	}
	expenseEntries := make([]ExpenseEntry, 0, len(expenses))
	for _, expense := range expenses {
		expenseEntries = append(expenseEntries, ExpenseEntry{
			ID:          expense.ID,
			Type:        expense.ExpenseType,
			Amount:      expense.Amount,
			Description: expense.Description,
			Date:        expense.ExpenseDate.Format(time.RFC3339),
		})
	}

	return &DriverAccountDetails{
		Account:   account,
		Shipments: shipmentEntries,
		Expenses:  expenseEntries,
	}, nil
}

func (s *service) AllDriversAccounts(ctx context.Context) ([]DriverAccount, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drivers")
	}

	accounts := make([]DriverAccount, 0, len(drivers))
	for i := range drivers {
		account, err := s.computeAccount(ctx, &drivers[i])
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	return accounts, nil
}

func (s *service) DriversSummary(ctx context.Context) (*DriversSummary, error) {
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drivers")
	}

	summary := &DriversSummary{
		TotalDrivers:  len(drivers),
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
		TotalBalance:  decimal.Zero,
		Drivers:       make([]DriverAccount, 0, len(drivers)),
	}

	for i := range drivers {
		if drivers[i].Status == enums.DriverStatusActive {
			summary.ActiveDrivers++
		}

		account, err := s.computeAccount(ctx, &drivers[i])
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				continue
			}
			return nil, err
		}

		summary.TotalRevenue = summary.TotalRevenue.Add(account.TotalRevenue)
		summary.TotalExpenses = summary.TotalExpenses.Add(account.TotalExpenses)
		summary.TotalBalance = summary.TotalBalance.Add(account.Balance)
		switch account.AccountStatus {
		case AccountStatusCreditor:
			summary.CreditorDrivers++
		case AccountStatusDebtor:
			summary.DebtorDrivers++
		}
		summary.Drivers = append(summary.Drivers, *account)
	}
	return summary, nil
}
