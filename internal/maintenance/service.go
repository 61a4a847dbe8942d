package maintenance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/internal/ledger"
	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service records service visits. A visit writes three things atomically:
// the maintenance record, the truck's last maintenance date, and a matching
// maintenance expense in the ledger.
type Service interface {
	Create(ctx context.Context, input CreateRecordInput) (*models.MaintenanceRecord, error)
	List(ctx context.Context) ([]models.MaintenanceRecord, error)
}

type service struct {
	repo     Repository
	trucks   trucks.Repository
	expenses ledger.ExpenseRepository
	tx       txRunner
}

// NewService wires a maintenance service with its collaborating
// repositories.
func NewService(repo Repository, trucksRepo trucks.Repository, expenses ledger.ExpenseRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if trucksRepo == nil {
		return nil, fmt.Errorf("truck repository required")
	}
	if expenses == nil {
		return nil, fmt.Errorf("expense repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, trucks: trucksRepo, expenses: expenses, tx: tx}, nil
}

// CreateRecordInput captures one service visit.
type CreateRecordInput struct {
	TruckID         uint            `json:"truck_id" validate:"required"`
	MaintenanceType string          `json:"maintenance_type" validate:"required"`
	Cost            decimal.Decimal `json:"cost"`
	MaintenanceDate *time.Time      `json:"maintenance_date"`
	Description     string          `json:"description"`
}

func (s *service) Create(ctx context.Context, input CreateRecordInput) (*models.MaintenanceRecord, error) {
	if input.Cost.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cost must not be negative")
	}

	if _, err := s.trucks.FindByID(ctx, input.TruckID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}

	now := timeNowUTC()
	maintenanceDate := now
	if input.MaintenanceDate != nil {
		maintenanceDate = *input.MaintenanceDate
	}

	record := &models.MaintenanceRecord{
		TruckID:         input.TruckID,
		MaintenanceType: input.MaintenanceType,
		Cost:            input.Cost,
		MaintenanceDate: maintenanceDate,
		Description:     input.Description,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, record); err != nil {
			return err
		}
		if err := s.trucks.WithTx(tx).SetLastMaintenanceDate(ctx, input.TruckID, now); err != nil {
			return err
		}
		return s.expenses.WithTx(tx).Create(ctx, &models.Expense{
			TruckID:     input.TruckID,
			ExpenseType: enums.ExpenseTypeMaintenance,
			Amount:      input.Cost,
			ExpenseDate: now,
			Description: fmt.Sprintf("maintenance: %s - %s", input.MaintenanceType, input.Description),
		})
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record maintenance")
	}
	return record, nil
}

func (s *service) List(ctx context.Context) ([]models.MaintenanceRecord, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenance records")
	}
	return list, nil
}
