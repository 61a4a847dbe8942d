package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

type fakeRevenueRepo struct {
	createFn func(ctx context.Context, revenue *models.Revenue) error
}

func (f *fakeRevenueRepo) WithTx(tx *gorm.DB) RevenueRepository { return f }

func (f *fakeRevenueRepo) Create(ctx context.Context, revenue *models.Revenue) error {
	if f.createFn != nil {
		return f.createFn(ctx, revenue)
	}
	return nil
}

func (f *fakeRevenueRepo) List(ctx context.Context) ([]models.Revenue, error) { return nil, nil }

func (f *fakeRevenueRepo) SumByTruck(ctx context.Context, truckID uint, w Window) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeRevenueRepo) SumTotal(ctx context.Context, w Window) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

type fakeExpenseRepo struct {
	createFn func(ctx context.Context, expense *models.Expense) error
}

func (f *fakeExpenseRepo) WithTx(tx *gorm.DB) ExpenseRepository { return f }

func (f *fakeExpenseRepo) Create(ctx context.Context, expense *models.Expense) error {
	if f.createFn != nil {
		return f.createFn(ctx, expense)
	}
	return nil
}

func (f *fakeExpenseRepo) List(ctx context.Context) ([]models.Expense, error) { return nil, nil }

func (f *fakeExpenseRepo) ListByDriver(ctx context.Context, driverID uint) ([]models.Expense, error) {
	return nil, nil
}

func (f *fakeExpenseRepo) ListSince(ctx context.Context, since time.Time) ([]models.Expense, error) {
	return nil, nil
}

func (f *fakeExpenseRepo) SumByTruck(ctx context.Context, truckID uint, w Window) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeExpenseRepo) SumByDriver(ctx context.Context, driverID uint, w Window) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func (f *fakeExpenseRepo) SumTotal(ctx context.Context, w Window) (decimal.Decimal, error) {
	return decimal.Zero, nil
}

func TestService_RecordRevenueStampsDate(t *testing.T) {
	revenues := &fakeRevenueRepo{}
	svc, err := NewService(revenues, &fakeExpenseRepo{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	frozen := time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC)
	restore := timeNowUTC
	timeNowUTC = func() time.Time { return frozen }
	defer func() { timeNowUTC = restore }()

	var created *models.Revenue
	revenues.createFn = func(ctx context.Context, revenue *models.Revenue) error {
		created = revenue
		return nil
	}

	got, err := svc.RecordRevenue(context.Background(), RecordRevenueInput{
		TruckID: 3,
		Amount:  decimal.NewFromInt(1500),
	})
	if err != nil {
		t.Fatalf("RecordRevenue error: %v", err)
	}
	if created == nil || got != created {
		t.Fatal("expected revenue to be created and returned")
	}
	if !created.RevenueDate.Equal(frozen) {
		t.Fatalf("expected revenue date stamped with now, got %v", created.RevenueDate)
	}
}

func TestService_RecordExpenseValidation(t *testing.T) {
	svc, _ := NewService(&fakeRevenueRepo{}, &fakeExpenseRepo{})

	_, err := svc.RecordExpense(context.Background(), RecordExpenseInput{
		TruckID:     3,
		ExpenseType: enums.ExpenseType("bribe"),
		Amount:      decimal.NewFromInt(100),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code for bad type, got %v", err)
	}

	_, err = svc.RecordExpense(context.Background(), RecordExpenseInput{
		TruckID:     3,
		ExpenseType: enums.ExpenseTypeFuel,
		Amount:      decimal.Zero,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code for zero amount, got %v", err)
	}
}
