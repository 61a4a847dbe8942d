package shipments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/internal/trucks"
	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
	pkgerrors "github.com/omaralfarsi/fleetledger-backend/pkg/errors"
)

var timeNowUTC = func() time.Time { return time.Now().UTC() }

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes shipment operations.
type Service interface {
	Create(ctx context.Context, input CreateShipmentInput) (*models.Shipment, error)
	GetByID(ctx context.Context, id uint) (*models.Shipment, error)
	List(ctx context.Context) ([]models.Shipment, error)
	Update(ctx context.Context, id uint, input UpdateShipmentInput) (*models.Shipment, error)
}

type service struct {
	repo   Repository
	trucks trucks.Repository
	tx     txRunner
}

// NewService wires a shipment service. The transaction runner keeps the
// shipment insert and the truck counter bump atomic.
func NewService(repo Repository, trucksRepo trucks.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipment repository required")
	}
	if trucksRepo == nil {
		return nil, fmt.Errorf("truck repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, trucks: trucksRepo, tx: tx}, nil
}

// CreateShipmentInput captures the fields required to book a shipment.
type CreateShipmentInput struct {
	TruckID      uint                 `json:"truck_id" validate:"required"`
	DriverID     uint                 `json:"driver_id" validate:"required"`
	FromLocation string               `json:"from_location" validate:"required"`
	ToLocation   string               `json:"to_location" validate:"required"`
	Cargo        string               `json:"cargo" validate:"required"`
	Revenue      decimal.Decimal      `json:"revenue"`
	Status       enums.ShipmentStatus `json:"status"`
	ShipmentDate *time.Time           `json:"shipment_date"`
}

// UpdateShipmentInput allows changing status and revenue of a booked
// shipment.
type UpdateShipmentInput struct {
	Status  *enums.ShipmentStatus `json:"status"`
	Revenue *decimal.Decimal      `json:"revenue"`
}

func (s *service) Create(ctx context.Context, input CreateShipmentInput) (*models.Shipment, error) {
	if input.Revenue.IsNegative() || input.Revenue.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "revenue must be greater than zero")
	}
	status := input.Status
	if status == "" {
		status = enums.ShipmentStatusPending
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid shipment status %q", status))
	}

	shipmentDate := timeNowUTC()
	if input.ShipmentDate != nil {
		shipmentDate = *input.ShipmentDate
	}

	shipment := &models.Shipment{
		TruckID:      input.TruckID,
		DriverID:     input.DriverID,
		FromLocation: input.FromLocation,
		ToLocation:   input.ToLocation,
		Cargo:        input.Cargo,
		Revenue:      input.Revenue,
		Status:       status,
		ShipmentDate: shipmentDate,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, shipment); err != nil {
			return err
		}
		return s.trucks.WithTx(tx).IncrementTotalShipments(ctx, input.TruckID)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create shipment")
	}
	return shipment, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*models.Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	return shipment, nil
}

func (s *service) List(ctx context.Context) ([]models.Shipment, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipments")
	}
	return list, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateShipmentInput) (*models.Shipment, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}

	if input.Status != nil {
		if !input.Status.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid shipment status %q", *input.Status))
		}
		shipment.Status = *input.Status
	}
	if input.Revenue != nil {
		if input.Revenue.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "revenue must not be negative")
		}
		shipment.Revenue = *input.Revenue
	}

	if err := s.repo.Update(ctx, shipment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shipment")
	}
	return shipment, nil
}
