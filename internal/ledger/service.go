package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

// Service records and lists ledger rows. The derived reports live in
// internal/accounts and internal/analytics; this package owns the raw
// entries.
type Service interface {
	RecordRevenue(ctx context.Context, input RecordRevenueInput) (*models.Revenue, error)
	ListRevenues(ctx context.Context) ([]models.Revenue, error)
	RecordExpense(ctx context.Context, input RecordExpenseInput) (*models.Expense, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
}

type service struct {
	revenues RevenueRepository
	expenses ExpenseRepository
}

// NewService wires a ledger service with both row repositories.
func NewService(revenues RevenueRepository, expenses ExpenseRepository) (Service, error) {
	if revenues == nil {
		return nil, fmt.Errorf("revenue repository required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	return &service{revenues: revenues, expenses: expenses}, nil
}

// RecordRevenueInput captures one earned amount for a truck.
type RecordRevenueInput struct {
	TruckID     uint            `json:"truck_id" validate:"required"`
	ShipmentID  *uint           `json:"shipment_id"`
	Amount      decimal.Decimal `json:"amount"`
	RevenueDate *time.Time      `json:"revenue_date"`
	Description string          `json:"description"`
}

// RecordExpenseInput captures one spent amount, truck-scoped and optionally
// driver-scoped.
type RecordExpenseInput struct {
	TruckID     uint              `json:"truck_id" validate:"required"`
	DriverID    *uint             `json:"driver_id"`
	ExpenseType enums.ExpenseType `json:"expense_type" validate:"required"`
	Amount      decimal.Decimal   `json:"amount"`
	ExpenseDate *time.Time        `json:"expense_date"`
	Description string            `json:"description"`
}

func (s *service) RecordRevenue(ctx context.Context, input RecordRevenueInput) (*models.Revenue, error) {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}

	revenueDate := timeNowUTC()
	if input.RevenueDate != nil {
		revenueDate = *input.RevenueDate
	}

	revenue := &models.Revenue{
		TruckID:     input.TruckID,
		ShipmentID:  input.ShipmentID,
		Amount:      input.Amount,
		RevenueDate: revenueDate,
		Description: input.Description,
	}
	if err := s.revenues.Create(ctx, revenue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record revenue")
	}
	return revenue, nil
}

func (s *service) ListRevenues(ctx context.Context) ([]models.Revenue, error) {
	list, err := s.revenues.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list revenues")
	}
	return list, nil
}

func (s *service) RecordExpense(ctx context.Context, input RecordExpenseInput) (*models.Expense, error) {
	if input.Amount.IsNegative() || input.Amount.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be greater than zero")
	}
	if !input.ExpenseType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid expense type %q", input.ExpenseType))
	}

	expenseDate := timeNowUTC()
	if input.ExpenseDate != nil {
		expenseDate = *input.ExpenseDate
	}

	expense := &models.Expense{
		TruckID:     input.TruckID,
		DriverID:    input.DriverID,
		ExpenseType: input.ExpenseType,
		Amount:      input.Amount,
		ExpenseDate: expenseDate,
		Description: input.Description,
	}
	if err := s.expenses.Create(ctx, expense); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record expense")
	}
	return expense, nil
}

func (s *service) ListExpenses(ctx context.Context) ([]models.Expense, error) {
	list, err := s.expenses.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list expenses")
	}
	return list, nil
}
