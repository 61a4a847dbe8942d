package notifications

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	"github.com/omaralfarsi/fleetledger-backend/pkg/pagination"
)

type fakeRepository struct {
	created []*models.Notification

	markReadErr error
}

func (f *fakeRepository) WithTx(tx *gorm.DB) Repository { return f }

func (f *fakeRepository) Create(ctx context.Context, notification *models.Notification) error {
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) ListUnread(ctx context.Context) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeRepository) List(ctx context.Context, limit int, cursor *pagination.Cursor) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, id uint) error {
	if f.markReadErr != nil {
		return f.markReadErr
	}
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uint) error { return nil }

type fakeTrucks struct {
	byID map[uint]*models.Truck
}

func (f *fakeTrucks) FindByID(ctx context.Context, id uint) (*models.Truck, error) {
	if truck, ok := f.byID[id]; ok {
		return truck, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeRevenues struct {
	byTruck map[uint]decimal.Decimal
}

func (f *fakeRevenues) SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error) {
	if total, ok := f.byTruck[truckID]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

type fakeExpenses struct {
	byTruck map[uint]decimal.Decimal
}

func (f *fakeExpenses) SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error) {
	if total, ok := f.byTruck[truckID]; ok {
		return total, nil
	}
	return decimal.Zero, nil
}

func newTestService(t *testing.T, repo *fakeRepository, trucks *fakeTrucks, revenues *fakeRevenues, expenses *fakeExpenses) Service {
	t.Helper()
	svc, err := NewService(repo, trucks, revenues, expenses, nil)
	if err != nil {
		t.Fatalf("unexpected service error: %v", err)
	}
	return svc
}

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	restore := timeNowUTC
	timeNowUTC = func() time.Time { return at }
	t.Cleanup(func() { timeNowUTC = restore })
}

func TestCheckMaintenanceDue_OverdueEmits(t *testing.T) {
	freezeNow(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	last := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC) // 61 days ago
	repo := &fakeRepository{}
	trucks := &fakeTrucks{byID: map[uint]*models.Truck{
		1: {ID: 1, PlateNumber: "KSA-1024", LastMaintenanceDate: &last},
	}}
	svc := newTestService(t, repo, trucks, &fakeRevenues{}, &fakeExpenses{})

	due, err := svc.CheckMaintenanceDue(context.Background(), 1, 30)
	if err != nil {
		t.Fatalf("CheckMaintenanceDue error: %v", err)
	}
	if !due {
		t.Fatal("expected truck to be due")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.created))
	}

	notification := repo.created[0]
	if notification.Type != enums.NotificationTypeMaintenance {
		t.Fatalf("expected maintenance type, got %q", notification.Type)
	}
	if !strings.Contains(notification.Title, "KSA-1024") {
		t.Fatalf("title must name the plate: %q", notification.Title)
	}
	if !strings.Contains(notification.Message, "61 days") {
		t.Fatalf("message must carry the day count: %q", notification.Message)
	}
	if notification.IsRead {
		t.Fatal("new notifications must start unread")
	}
}

func TestCheckMaintenanceDue_RecentNotDue(t *testing.T) {
	freezeNow(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	last := time.Date(2025, 8, 20, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepository{}
	trucks := &fakeTrucks{byID: map[uint]*models.Truck{
		1: {ID: 1, PlateNumber: "KSA-1024", LastMaintenanceDate: &last},
	}}
	svc := newTestService(t, repo, trucks, &fakeRevenues{}, &fakeExpenses{})

	due, err := svc.CheckMaintenanceDue(context.Background(), 1, 30)
	if err != nil {
		t.Fatalf("CheckMaintenanceDue error: %v", err)
	}
	if due || len(repo.created) != 0 {
		t.Fatalf("expected no emission for recent maintenance: due=%v emitted=%d", due, len(repo.created))
	}
}

func TestCheckMaintenanceDue_NoRecordEmitsAndIsDue(t *testing.T) {
	freezeNow(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	repo := &fakeRepository{}
	trucks := &fakeTrucks{byID: map[uint]*models.Truck{
		1: {ID: 1, PlateNumber: "KSA-1024"},
	}}
	svc := newTestService(t, repo, trucks, &fakeRevenues{}, &fakeExpenses{})

	due, err := svc.CheckMaintenanceDue(context.Background(), 1, 30)
	if err != nil {
		t.Fatalf("CheckMaintenanceDue error: %v", err)
	}
	if !due {
		t.Fatal("expected truck with no history to be due")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.created))
	}
}

func TestCheckMaintenanceDue_MissingTruck(t *testing.T) {
	repo := &fakeRepository{}
	svc := newTestService(t, repo, &fakeTrucks{}, &fakeRevenues{}, &fakeExpenses{})

	due, err := svc.CheckMaintenanceDue(context.Background(), 404, 30)
	if err != nil {
		t.Fatalf("CheckMaintenanceDue error: %v", err)
	}
	if due || len(repo.created) != 0 {
		t.Fatal("missing truck must be neither due nor notified")
	}
}

func TestCheckMaintenanceDue_RepeatedCallsDuplicate(t *testing.T) {
	freezeNow(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	last := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeRepository{}
	trucks := &fakeTrucks{byID: map[uint]*models.Truck{
		1: {ID: 1, PlateNumber: "KSA-1024", LastMaintenanceDate: &last},
	}}
	svc := newTestService(t, repo, trucks, &fakeRevenues{}, &fakeExpenses{})

	// Each due evaluation inserts its own row; nothing deduplicates them.
	for i := 0; i < 2; i++ {
		if _, err := svc.CheckMaintenanceDue(context.Background(), 1, 30); err != nil {
			t.Fatalf("CheckMaintenanceDue error: %v", err)
		}
	}
	if len(repo.created) != 2 {
		t.Fatalf("expected two duplicate notifications, got %d", len(repo.created))
	}
}

func TestCheckTruckProfitability_LossEmits(t *testing.T) {
	freezeNow(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	repo := &fakeRepository{}
	trucks := &fakeTrucks{byID: map[uint]*models.Truck{
		2: {ID: 2, PlateNumber: "KSA-2048"},
	}}
	revenues := &fakeRevenues{byTruck: map[uint]decimal.Decimal{2: decimal.NewFromInt(3000)}}
	expenses := &fakeExpenses{byTruck: map[uint]decimal.Decimal{2: decimal.NewFromInt(5000)}}
	svc := newTestService(t, repo, trucks, revenues, expenses)

	profitable, err := svc.CheckTruckProfitability(context.Background(), 2, 30)
	if err != nil {
		t.Fatalf("CheckTruckProfitability error: %v", err)
	}
	if profitable {
		t.Fatal("expected truck to be unprofitable")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected one notification, got %d", len(repo.created))
	}

	notification := repo.created[0]
	if notification.Type != enums.NotificationTypeLoss {
		t.Fatalf("expected loss type, got %q", notification.Type)
	}
	if !strings.Contains(notification.Message, "2000.00") {
		t.Fatalf("message must carry the absolute loss: %q", notification.Message)
	}
	if !strings.Contains(notification.Message, "30 days") {
		t.Fatalf("message must carry the window length: %q", notification.Message)
	}
}

func TestCheckTruckProfitability_BreakEvenIsProfitable(t *testing.T) {
	freezeNow(t, time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))

	repo := &fakeRepository{}
	revenues := &fakeRevenues{byTruck: map[uint]decimal.Decimal{2: decimal.NewFromInt(5000)}}
	expenses := &fakeExpenses{byTruck: map[uint]decimal.Decimal{2: decimal.NewFromInt(5000)}}
	svc := newTestService(t, repo, &fakeTrucks{}, revenues, expenses)

	profitable, err := svc.CheckTruckProfitability(context.Background(), 2, 30)
	if err != nil {
		t.Fatalf("CheckTruckProfitability error: %v", err)
	}
	if !profitable || len(repo.created) != 0 {
		t.Fatal("break-even must count as profitable and emit nothing")
	}
}

func TestMarkRead_MissingReturnsFalse(t *testing.T) {
	repo := &fakeRepository{markReadErr: gorm.ErrRecordNotFound}
	svc := newTestService(t, repo, &fakeTrucks{}, &fakeRevenues{}, &fakeExpenses{})

	ok, err := svc.MarkRead(context.Background(), 404)
	if err != nil {
		t.Fatalf("MarkRead error: %v", err)
	}
	if ok {
		t.Fatal("expected false for missing notification")
	}
}
