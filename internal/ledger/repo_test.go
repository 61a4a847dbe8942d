package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Revenue{}, &models.Expense{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func day(d int) time.Time {
	return time.Date(2025, 8, d, 12, 0, 0, 0, time.UTC)
}

func TestRevenueRepository_SumByTruckTrailingWindow(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRevenueRepository(conn)
	ctx := context.Background()

	rows := []models.Revenue{
		{TruckID: 1, Amount: decimal.NewFromInt(1000), RevenueDate: day(1)},
		{TruckID: 1, Amount: decimal.NewFromInt(2500), RevenueDate: day(10)},
		{TruckID: 1, Amount: decimal.NewFromInt(400), RevenueDate: day(20)},
		{TruckID: 2, Amount: decimal.NewFromInt(9999), RevenueDate: day(10)},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create revenue: %v", err)
		}
	}

	// Trailing window cuts off day 1 but has no upper bound.
	now := day(15)
	total, err := repo.SumByTruck(ctx, 1, SinceDays(now, 10))
	if err != nil {
		t.Fatalf("sum by truck: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(2900)) {
		t.Fatalf("expected 2900, got %s", total)
	}
}

func TestRevenueRepository_SumByTruckInclusiveRange(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRevenueRepository(conn)
	ctx := context.Background()

	rows := []models.Revenue{
		{TruckID: 1, Amount: decimal.NewFromInt(100), RevenueDate: day(5)},
		{TruckID: 1, Amount: decimal.NewFromInt(200), RevenueDate: day(10)},
		{TruckID: 1, Amount: decimal.NewFromInt(400), RevenueDate: day(15)},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create revenue: %v", err)
		}
	}

	// Both boundary rows count.
	total, err := repo.SumByTruck(ctx, 1, Between(day(5), day(15)))
	if err != nil {
		t.Fatalf("sum by truck: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(700)) {
		t.Fatalf("expected 700, got %s", total)
	}
}

func TestRevenueRepository_SumEmptyIsZero(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRevenueRepository(conn)

	total, err := repo.SumByTruck(context.Background(), 42, Window{})
	if err != nil {
		t.Fatalf("sum by truck: %v", err)
	}
	if !total.IsZero() {
		t.Fatalf("expected zero sum for empty ledger, got %s", total)
	}
}

func TestExpenseRepository_SumByDriverIgnoresOtherDrivers(t *testing.T) {
	conn := openTestDB(t)
	repo := NewExpenseRepository(conn)
	ctx := context.Background()

	d1, d2 := uint(1), uint(2)
	rows := []models.Expense{
		{TruckID: 1, DriverID: &d1, ExpenseType: enums.ExpenseTypeFuel, Amount: decimal.NewFromInt(300), ExpenseDate: day(3)},
		{TruckID: 1, DriverID: &d1, ExpenseType: enums.ExpenseTypeFine, Amount: decimal.NewFromInt(200), ExpenseDate: day(8)},
		{TruckID: 1, DriverID: &d2, ExpenseType: enums.ExpenseTypeFuel, Amount: decimal.NewFromInt(700), ExpenseDate: day(8)},
		{TruckID: 1, ExpenseType: enums.ExpenseTypeMaintenance, Amount: decimal.NewFromInt(900), ExpenseDate: day(8)},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	total, err := repo.SumByDriver(ctx, d1, Window{})
	if err != nil {
		t.Fatalf("sum by driver: %v", err)
	}
	if !total.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("expected 500, got %s", total)
	}

	truckTotal, err := repo.SumByTruck(ctx, 1, Window{})
	if err != nil {
		t.Fatalf("sum by truck: %v", err)
	}
	if !truckTotal.Equal(decimal.NewFromInt(2100)) {
		t.Fatalf("expected 2100, got %s", truckTotal)
	}
}

func TestExpenseRepository_ListSince(t *testing.T) {
	conn := openTestDB(t)
	repo := NewExpenseRepository(conn)
	ctx := context.Background()

	rows := []models.Expense{
		{TruckID: 1, ExpenseType: enums.ExpenseTypeFuel, Amount: decimal.NewFromInt(100), ExpenseDate: day(1)},
		{TruckID: 2, ExpenseType: enums.ExpenseTypeOther, Amount: decimal.NewFromInt(200), ExpenseDate: day(12)},
	}
	for i := range rows {
		if err := repo.Create(ctx, &rows[i]); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	got, err := repo.ListSince(ctx, day(10))
	if err != nil {
		t.Fatalf("list since: %v", err)
	}
	if len(got) != 1 || got[0].TruckID != 2 {
		t.Fatalf("expected only the later expense, got %+v", got)
	}
}
