package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
)

// ExpenseRepository manages persistence for expense rows.
type ExpenseRepository interface {
	WithTx(tx *gorm.DB) ExpenseRepository
	Create(ctx context.Context, expense *models.Expense) error
	List(ctx context.Context) ([]models.Expense, error)
	ListByDriver(ctx context.Context, driverID uint) ([]models.Expense, error)
	ListSince(ctx context.Context, since time.Time) ([]models.Expense, error)
	SumByTruck(ctx context.Context, truckID uint, w Window) (decimal.Decimal, error)
	SumByDriver(ctx context.Context, driverID uint, w Window) (decimal.Decimal, error)
	SumTotal(ctx context.Context, w Window) (decimal.Decimal, error)
}

type expenseRepository struct {
	db *gorm.DB
}

// NewExpenseRepository returns an expense repository bound to the provided
// database.
func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) WithTx(tx *gorm.DB) ExpenseRepository {
	if tx == nil {
		return r
	}
	return &expenseRepository{db: tx}
}

func (r *expenseRepository) Create(ctx context.Context, expense *models.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) List(ctx context.Context) ([]models.Expense, error) {
	var list []models.Expense
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *expenseRepository) ListByDriver(ctx context.Context, driverID uint) ([]models.Expense, error) {
	var list []models.Expense
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("expense_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *expenseRepository) ListSince(ctx context.Context, since time.Time) ([]models.Expense, error) {
	var list []models.Expense
	if err := r.db.WithContext(ctx).
		Where("expense_date >= ?", since).
		Order("expense_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *expenseRepository) SumByTruck(ctx context.Context, truckID uint, w Window) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("truck_id = ?", truckID)
	return sumAmount(w.apply(q, "expense_date"))
}

func (r *expenseRepository) SumByDriver(ctx context.Context, driverID uint, w Window) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Expense{}).
		Where("driver_id = ?", driverID)
	return sumAmount(w.apply(q, "expense_date"))
}

func (r *expenseRepository) SumTotal(ctx context.Context, w Window) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&models.Expense{})
	return sumAmount(w.apply(q, "expense_date"))
}
