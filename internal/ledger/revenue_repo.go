package ledger

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/omaralfarsi/fleetledger-backend/pkg/db/models"
)

// RevenueRepository manages persistence for revenue rows.
type RevenueRepository interface {
	WithTx(tx *gorm.DB) RevenueRepository
	Create(ctx context.Context, revenue *models.Revenue) error
	List(ctx context.Context) ([]models.Revenue, error)
	SumByTruck(ctx context.Context, truckID uint, w Window) (decimal.Decimal, error)
	SumTotal(ctx context.Context, w Window) (decimal.Decimal, error)
}

type revenueRepository struct {
	db *gorm.DB
}

// NewRevenueRepository returns a revenue repository bound to the provided
// database.
func NewRevenueRepository(db *gorm.DB) RevenueRepository {
	return &revenueRepository{db: db}
}

func (r *revenueRepository) WithTx(tx *gorm.DB) RevenueRepository {
	if tx == nil {
		return r
	}
	return &revenueRepository{db: tx}
}

func (r *revenueRepository) Create(ctx context.Context, revenue *models.Revenue) error {
	return r.db.WithContext(ctx).Create(revenue).Error
}

func (r *revenueRepository) List(ctx context.Context) ([]models.Revenue, error) {
	var list []models.Revenue
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *revenueRepository) SumByTruck(ctx context.Context, truckID uint, w Window) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Revenue{}).
		Where("truck_id = ?", truckID)
	return sumAmount(w.apply(q, "revenue_date"))
}

func (r *revenueRepository) SumTotal(ctx context.Context, w Window) (decimal.Decimal, error) {
	q := r.db.WithContext(ctx).Model(&models.Revenue{})
	return sumAmount(w.apply(q, "revenue_date"))
}

func sumAmount(q *gorm.DB) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := q.Select("SUM(amount)").Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
