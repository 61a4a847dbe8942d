package shipments

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
)

// Repository manages persistence for shipments.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, shipment *models.Shipment) error
	FindByID(ctx context.Context, id uint) (*models.Shipment, error)
	List(ctx context.Context) ([]models.Shipment, error)
	ListByDriver(ctx context.Context, driverID uint) ([]models.Shipment, error)
	ListByDriverSince(ctx context.Context, driverID uint, since time.Time) ([]models.Shipment, error)
	ListByTruckSince(ctx context.Context, truckID uint, since time.Time) ([]models.Shipment, error)
	Update(ctx context.Context, shipment *models.Shipment) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a shipment repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Create(shipment).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Shipment, error) {
	var shipment models.Shipment
	if err := r.db.WithContext(ctx).First(&shipment, id).Error; err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *repository) List(ctx context.Context) ([]models.Shipment, error) {
	var list []models.Shipment
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByDriver(ctx context.Context, driverID uint) ([]models.Shipment, error) {
	var list []models.Shipment
	if err := r.db.WithContext(ctx).
		Where("driver_id = ?", driverID).
		Order("shipment_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByDriverSince(ctx context.Context, driverID uint, since time.Time) ([]models.Shipment, error) {
	var list []models.Shipment
	if err := r.db.WithContext(ctx).
		Where("driver_id = ? AND shipment_date >= ?", driverID, since).
		Order("shipment_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) ListByTruckSince(ctx context.Context, truckID uint, since time.Time) ([]models.Shipment, error) {
	var list []models.Shipment
	if err := r.db.WithContext(ctx).
		Where("truck_id = ? AND shipment_date >= ?", truckID, since).
		Order("shipment_date ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Save(shipment).Error
}
