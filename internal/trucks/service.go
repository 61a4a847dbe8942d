package trucks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

// Service exposes truck operations.
type Service interface {
	Create(ctx context.Context, input CreateTruckInput) (*models.Truck, error)
	GetByID(ctx context.Context, id uint) (*models.Truck, error)
	List(ctx context.Context) ([]models.Truck, error)
	Update(ctx context.Context, id uint, input UpdateTruckInput) (*models.Truck, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService wires a truck service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("truck repository required")
	}
	return &service{repo: repo}, nil
}

// CreateTruckInput captures the fields required to register a truck.
type CreateTruckInput struct {
	TruckType   string            `json:"truck_type" validate:"required"`
	PlateNumber string            `json:"plate_number" validate:"required"`
	Status      enums.TruckStatus `json:"status"`
}

// UpdateTruckInput captures the allowed truck fields for mutation. Nil
// pointers leave the stored value unchanged.
type UpdateTruckInput struct {
	TruckType           *string            `json:"truck_type"`
	PlateNumber         *string            `json:"plate_number"`
	Status              *enums.TruckStatus `json:"status"`
	LastMaintenanceDate *time.Time         `json:"last_maintenance_date"`
}

func (s *service) Create(ctx context.Context, input CreateTruckInput) (*models.Truck, error) {
	status := input.Status
	if status == "" {
		status = enums.TruckStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid truck status %q", status))
	}

	truck := &models.Truck{
		TruckType:   input.TruckType,
		PlateNumber: input.PlateNumber,
		Status:      status,
	}
	if err := s.repo.Create(ctx, truck); err != nil {
		if db.IsUniqueViolation(err, "idx_trucks_plate_number") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "plate number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create truck")
	}
	return truck, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Truck, error) {
	truck, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}
	return truck, nil
}

func (s *service) List(ctx context.Context) ([]models.Truck, error) {
	trucks, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list trucks")
	}
	return trucks, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateTruckInput) (*models.Truck, error) {
	truck, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load truck")
	}

	if input.TruckType != nil {
		truck.TruckType = *input.TruckType
	}
	if input.PlateNumber != nil {
		truck.PlateNumber = *input.PlateNumber
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid truck status %q", *input.Status))
		}
		truck.Status = *input.Status
	}
	if input.LastMaintenanceDate != nil {
		truck.LastMaintenanceDate = input.LastMaintenanceDate
	}

	if err := s.repo.Update(ctx, truck); err != nil {
		if db.IsUniqueViolation(err, "idx_trucks_plate_number") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "plate number already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update truck")
	}
	return truck, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "truck not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete truck")
	}
	return nil
}
