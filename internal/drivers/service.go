package drivers

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

// Service exposes driver operations.
type Service interface {
	Create(ctx context.Context, input CreateDriverInput) (*models.Driver, error)
	GetByID(ctx context.Context, id uint) (*models.Driver, error)
	List(ctx context.Context) ([]models.Driver, error)
	Update(ctx context.Context, id uint, input UpdateDriverInput) (*models.Driver, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo Repository
}

// NewService wires a driver service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("driver repository required")
	}
	return &service{repo: repo}, nil
}

// CreateDriverInput captures the fields required to register a driver.
type CreateDriverInput struct {
	Name        string             `json:"name" validate:"required"`
	PhoneNumber string             `json:"phone_number" validate:"required"`
	Salary      decimal.Decimal    `json:"salary"`
	TruckID     *uint              `json:"truck_id"`
	Status      enums.DriverStatus `json:"status"`
}

// UpdateDriverInput captures the allowed driver fields for mutation. Nil
// pointers leave the stored value unchanged. ClearTruck detaches a driver
// from their truck.
type UpdateDriverInput struct {
	Name        *string             `json:"name"`
	PhoneNumber *string             `json:"phone_number"`
	Salary      *decimal.Decimal    `json:"salary"`
	TruckID     *uint               `json:"truck_id"`
	ClearTruck  bool                `json:"clear_truck"`
	Status      *enums.DriverStatus `json:"status"`
}

func (s *service) Create(ctx context.Context, input CreateDriverInput) (*models.Driver, error) {
	if input.Salary.IsNegative() || input.Salary.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary must be greater than zero")
	}
	status := input.Status
	if status == "" {
		status = enums.DriverStatusActive
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid driver status %q", status))
	}

	driver := &models.Driver{
		Name:        input.Name,
		PhoneNumber: input.PhoneNumber,
		Salary:      input.Salary,
		TruckID:     input.TruckID,
		Status:      status,
	}
	if err := s.repo.Create(ctx, driver); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create driver")
	}
	return driver, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Driver, error) {
	driver, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "driver not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver")
	}
	return driver, nil
}

func (s *service) List(ctx context.Context) ([]models.Driver, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list drivers")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateDriverInput) (*models.Driver, error) {
	driver, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "driver not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load driver")
	}

	if input.Name != nil {
		driver.Name = *input.Name
	}
	if input.PhoneNumber != nil {
		driver.PhoneNumber = *input.PhoneNumber
	}
	if input.Salary != nil {
		if input.Salary.IsNegative() || input.Salary.IsZero() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "salary must be greater than zero")
		}
		driver.Salary = *input.Salary
	}
	if input.ClearTruck {
		driver.TruckID = nil
	} else if input.TruckID != nil {
		driver.TruckID = input.TruckID
	}
	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid driver status %q", *input.Status))
		}
		driver.Status = *input.Status
	}

	if err := s.repo.Update(ctx, driver); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update driver")
	}
	return driver, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "driver not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete driver")
	}
	return nil
}
