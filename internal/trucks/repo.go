package trucks

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
)

// Repository manages persistence for trucks.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, truck *models.Truck) error
	FindByID(ctx context.Context, id uint) (*models.Truck, error)
	List(ctx context.Context) ([]models.Truck, error)
	Update(ctx context.Context, truck *models.Truck) error
	Delete(ctx context.Context, id uint) error
	IncrementTotalShipments(ctx context.Context, id uint) error
	SetLastMaintenanceDate(ctx context.Context, id uint, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository returns a truck repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, truck *models.Truck) error {
	return r.db.WithContext(ctx).Create(truck).Error
}

func (r *repository) FindByID(ctx context.Context, id uint) (*models.Truck, error) {
	var truck models.Truck
	if err := r.db.WithContext(ctx).First(&truck, id).Error; err != nil {
		return nil, err
	}
	return &truck, nil
}

func (r *repository) List(ctx context.Context) ([]models.Truck, error) {
	var trucks []models.Truck
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&trucks).Error; err != nil {
		return nil, err
	}
	return trucks, nil
}

func (r *repository) Update(ctx context.Context, truck *models.Truck) error {
	return r.db.WithContext(ctx).Save(truck).Error
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Truck{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) IncrementTotalShipments(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Truck{}).
		Where("id = ?", id).
		UpdateColumn("total_shipments", gorm.Expr("total_shipments + 1")).Error
}

func (r *repository) SetLastMaintenanceDate(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Truck{}).
		Where("id = ?", id).
		Update("last_maintenance_date", at).Error
}
