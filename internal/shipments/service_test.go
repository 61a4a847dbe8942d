package shipments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

type fakeRepository struct {
	createFn   func(ctx context.Context, shipment *models.Shipment) error
	findByIDFn func(ctx context.Context, id uint) (*models.Shipment, error)
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, shipment *models.Shipment) error {
	if f.createFn != nil {
		return f.createFn(ctx, shipment)
	}
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uint) (*models.Shipment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) List(ctx context.Context) ([]models.Shipment, error) { return nil, nil }

func (f *fakeRepository) ListByDriver(ctx context.Context, driverID uint) ([]models.Shipment, error) {
	return nil, nil
}

func (f *fakeRepository) ListByDriverSince(ctx context.Context, driverID uint, since time.Time) ([]models.Shipment, error) {
	return nil, nil
}

func (f *fakeRepository) ListByTruckSince(ctx context.Context, truckID uint, since time.Time) ([]models.Shipment, error) {
	return nil, nil
}

func (f *fakeRepository) Update(ctx context.Context, shipment *models.Shipment) error { return nil }

type fakeTruckRepo struct {
	trucks.Repository

	incremented []uint
	incrementFn func(ctx context.Context, id uint) error
}

func (f *fakeTruckRepo) WithTx(tx *gorm.DB) trucks.Repository { return f }

func (f *fakeTruckRepo) IncrementTotalShipments(ctx context.Context, id uint) error {
	if f.incrementFn != nil {
		return f.incrementFn(ctx, id)
	}
	f.incremented = append(f.incremented, id)
	return nil
}

type fakeTxRunner struct {
	err error
}

func (f *fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if err := fn(nil); err != nil {
		return err
	}
	return f.err
}

func TestService_CreateBumpsTruckCounter(t *testing.T) {
	repo := &fakeRepository{}
	truckRepo := &fakeTruckRepo{}
	svc, err := NewService(repo, truckRepo, &fakeTxRunner{})
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}

	var created *models.Shipment
	repo.createFn = func(ctx context.Context, shipment *models.Shipment) error {
		created = shipment
		return nil
	}

	got, err := svc.Create(context.Background(), CreateShipmentInput{
		TruckID:      2,
		DriverID:     5,
		FromLocation: "Riyadh",
		ToLocation:   "Dammam",
		Cargo:        "steel coils",
		Revenue:      decimal.NewFromInt(5000),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created == nil || got != created {
		t.Fatal("expected shipment to be created and returned")
	}
	if created.Status != enums.ShipmentStatusPending {
		t.Fatalf("expected default pending status, got %q", created.Status)
	}
	if created.ShipmentDate.IsZero() {
		t.Fatal("expected shipment date to be stamped")
	}
	if len(truckRepo.incremented) != 1 || truckRepo.incremented[0] != 2 {
		t.Fatalf("expected truck 2 counter bump, got %v", truckRepo.incremented)
	}
}

func TestService_CreateRollsBackOnCounterFailure(t *testing.T) {
	repo := &fakeRepository{}
	truckRepo := &fakeTruckRepo{
		incrementFn: func(ctx context.Context, id uint) error {
			return errors.New("counter update failed")
		},
	}
	svc, _ := NewService(repo, truckRepo, &fakeTxRunner{})

	_, err := svc.Create(context.Background(), CreateShipmentInput{
		TruckID:      2,
		DriverID:     5,
		FromLocation: "Riyadh",
		ToLocation:   "Dammam",
		Cargo:        "steel coils",
		Revenue:      decimal.NewFromInt(5000),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", err)
	}
}

func TestService_CreateRejectsZeroRevenue(t *testing.T) {
	svc, _ := NewService(&fakeRepository{}, &fakeTruckRepo{}, &fakeTxRunner{})

	_, err := svc.Create(context.Background(), CreateShipmentInput{
		TruckID:      2,
		DriverID:     5,
		FromLocation: "Riyadh",
		ToLocation:   "Dammam",
		Cargo:        "steel coils",
		Revenue:      decimal.Zero,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", err)
	}
}

func TestService_UpdateStatusAndRevenue(t *testing.T) {
	stored := &models.Shipment{
		ID:       7,
		TruckID:  2,
		DriverID: 5,
		Revenue:  decimal.NewFromInt(5000),
		Status:   enums.ShipmentStatusPending,
	}
	repo := &fakeRepository{
		findByIDFn: func(ctx context.Context, id uint) (*models.Shipment, error) {
			return stored, nil
		},
	}
	svc, _ := NewService(repo, &fakeTruckRepo{}, &fakeTxRunner{})

	status := enums.ShipmentStatusDelivered
	revenue := decimal.NewFromInt(5500)
	got, err := svc.Update(context.Background(), 7, UpdateShipmentInput{
		Status:  &status,
		Revenue: &revenue,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.Status != enums.ShipmentStatusDelivered || !got.Revenue.Equal(revenue) {
		t.Fatalf("unexpected shipment after update: %+v", got)
	}
}
