package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Revenue is a ledger row for money earned by a truck, optionally tied to a
// shipment.
type Revenue struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckID     uint            `gorm:"not null;index" json:"truck_id"`
	ShipmentID  *uint           `gorm:"index" json:"shipment_id"`
	Amount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	RevenueDate time.Time       `gorm:"type:timestamptz;not null;index" json:"revenue_date"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
