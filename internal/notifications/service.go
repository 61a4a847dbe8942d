package notifications

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
	"github.com/omaralfarsi/fleetledger-backend/pkg/metrics"
	"github.com/omaralfarsi/fleetledger-backend/pkg/pagination"
)

// DefaultThresholdDays is used when a check is invoked without an explicit
// day count.
const DefaultThresholdDays = 30

var timeNowUTC = func() time.Time { return time.Now().UTC() }

type truckReader interface {
	FindByID(ctx context.Context, id uint) (*models.Truck, error)
}

type revenueReader interface {
	SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error)
}

type expenseReader interface {
	SumByTruck(ctx context.Context, truckID uint, w ledger.Window) (decimal.Decimal, error)
}

// Service evaluates the fleet's alert thresholds and manages the resulting
// notifications. Checks are not deduplicated: every due evaluation inserts a
// fresh row, so two concurrent sweeps produce two notifications.
type Service interface {
	CheckMaintenanceDue(ctx context.Context, truckID uint, daysThreshold int) (bool, error)
	CheckTruckProfitability(ctx context.Context, truckID uint, days int) (bool, error)
	UnreadNotifications(ctx context.Context) ([]models.Notification, error)
	List(ctx context.Context, params pagination.Params) ([]models.Notification, string, error)
	MarkRead(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo     Repository
	trucks   truckReader
	revenues revenueReader
	expenses expenseReader
	sweep    *metrics.CheckSweepMetrics
}

// NewService wires a notification service. The sweep metrics may be nil
// when the caller does not export Prometheus counters.
func NewService(repo Repository, trucks truckReader, revenues revenueReader, expenses expenseReader, sweep *metrics.CheckSweepMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notification repository required")
	}
	if trucks == nil {
		return nil, fmt.Errorf("truck reader required")
	}
	if revenues == nil {
		return nil, fmt.Errorf("revenue reader required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense reader required")
	}
	return &service{
		repo:     repo,
		trucks:   trucks,
		revenues: revenues,
		expenses: expenses,
		sweep:    sweep,
	}, nil
}

func normalizeDays(days int) int {
	if days <= 0 {
		return DefaultThresholdDays
	}
	return days
}

func (s *service) emit(ctx context.Context, notification *models.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create notification")
	}
	s.sweep.IncNotification(string(notification.Type))
	return nil
}

// CheckMaintenanceDue reports whether the truck is overdue for service and
// emits a maintenance notification when it is. A truck with no recorded
// maintenance at all is always due.
func (s *service) CheckMaintenanceDue(ctx context.Context, truckID uint, daysThreshold int) (bool, error) {
	daysThreshold = normalizeDays(daysThreshold)

	truck, err := s.trucks.FindByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}

	now := timeNowUTC()
	if truck.LastMaintenanceDate == nil {
		err := s.emit(ctx, &models.Notification{
			TruckID: &truck.ID,
			Title:   fmt.Sprintf("Maintenance due for truck %s", truck.PlateNumber),
			Message: "No maintenance on record. Please schedule maintenance",
			Type:    enums.NotificationTypeMaintenance,
		})
		if err != nil {
			return false, err
		}
		return true, nil
	}

	daysSince := int(now.Sub(*truck.LastMaintenanceDate).Hours() / 24)
	if daysSince < daysThreshold {
		return false, nil
	}

	err = s.emit(ctx, &models.Notification{
		TruckID: &truck.ID,
		Title:   fmt.Sprintf("Maintenance due for truck %s", truck.PlateNumber),
		Message: fmt.Sprintf("Last maintenance was %d days ago. Please schedule maintenance", daysSince),
		Type:    enums.NotificationTypeMaintenance,
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// CheckTruckProfitability reports whether the truck broke even over the
// trailing window. A loss emits a loss notification and returns false.
func (s *service) CheckTruckProfitability(ctx context.Context, truckID uint, days int) (bool, error) {
	days = normalizeDays(days)
	window := ledger.SinceDays(timeNowUTC(), days)

	revenue, err := s.revenues.SumByTruck(ctx, truckID, window)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck revenue")
	}
	expenses, err := s.expenses.SumByTruck(ctx, truckID, window)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum truck expenses")
	}

	profit := revenue.Sub(expenses)
	if !profit.IsNegative() {
		return true, nil
	}

	truck, err := s.trucks.FindByID(ctx, truckID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}

	err = s.emit(ctx, &models.Notification{
		TruckID: &truck.ID,
		Title:   fmt.Sprintf("Warning: loss for truck %s", truck.PlateNumber),
		Message: fmt.Sprintf("Truck is running a loss of %s over the last %d days", profit.Abs().StringFixed(2), days),
		Type:    enums.NotificationTypeLoss,
	})
	if err != nil {
		return false, err
	}
	return false, nil
}

func (s *service) UnreadNotifications(ctx context.Context) ([]models.Notification, error) {
	list, err := s.repo.ListUnread(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list unread notifications")
	}
	return list, nil
}

// List returns the newest notifications first along with the cursor for the
// next page, empty when the page was the last.
func (s *service) List(ctx context.Context, params pagination.Params) ([]models.Notification, string, error) {
	limit := pagination.NormalizeLimit(params.Limit)

	var cursor *pagination.Cursor
	if params.Cursor != "" {
		parsed, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "invalid cursor")
		}
		cursor = parsed
	}

	list, err := s.repo.List(ctx, pagination.LimitWithBuffer(limit), cursor)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list notifications")
	}

	next := ""
	if len(list) > limit {
		list = list[:limit]
		last := list[len(list)-1]
		next = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return list, next, nil
}

func (s *service) MarkRead(ctx context.Context, id uint) (bool, error) {
	if err := s.repo.MarkRead(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark notification read")
	}
	return true, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete notification")
	}
	return nil
}
