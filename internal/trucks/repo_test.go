package trucks

import (
	"context"
	"testing"
	"time"

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
	if err := conn.AutoMigrate(&models.Truck{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func TestRepository_IncrementTotalShipments(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	truck := &models.Truck{TruckType: "reefer", PlateNumber: "KSA-3301", Status: enums.TruckStatusActive}
	if err := repo.Create(ctx, truck); err != nil {
		t.Fatalf("create truck: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := repo.IncrementTotalShipments(ctx, truck.ID); err != nil {
			t.Fatalf("increment: %v", err)
		}
	}

	fetched, err := repo.FindByID(ctx, truck.ID)
	if err != nil {
		t.Fatalf("find truck: %v", err)
	}
	if fetched.TotalShipments != 3 {
		t.Fatalf("expected 3 shipments counted, got %d", fetched.TotalShipments)
	}
}

func TestRepository_SetLastMaintenanceDate(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	truck := &models.Truck{TruckType: "reefer", PlateNumber: "KSA-3302", Status: enums.TruckStatusActive}
	if err := repo.Create(ctx, truck); err != nil {
		t.Fatalf("create truck: %v", err)
	}
	if truck.LastMaintenanceDate != nil {
		t.Fatal("new truck should have no maintenance date")
	}

	at := time.Date(2025, 7, 15, 9, 0, 0, 0, time.UTC)
	if err := repo.SetLastMaintenanceDate(ctx, truck.ID, at); err != nil {
		t.Fatalf("set maintenance date: %v", err)
	}

	fetched, err := repo.FindByID(ctx, truck.ID)
	if err != nil {
		t.Fatalf("find truck: %v", err)
	}
	if fetched.LastMaintenanceDate == nil || !fetched.LastMaintenanceDate.Equal(at) {
		t.Fatalf("expected maintenance date %v, got %v", at, fetched.LastMaintenanceDate)
	}
}

func TestRepository_DeleteMissing(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)

	if err := repo.Delete(context.Background(), 404); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record not found, got %v", err)
	}
}
