package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MaintenanceRecord documents one service visit. Creating a record also
// stamps the truck's LastMaintenanceDate and books a maintenance expense for
// the same cost; see internal/maintenance.
type MaintenanceRecord struct {
	ID              uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckID         uint            `gorm:"not null;index" json:"truck_id"`
	MaintenanceType string          `gorm:"type:text;not null" json:"maintenance_type"`
	Cost            decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"cost"`
	MaintenanceDate time.Time       `gorm:"type:timestamptz;not null" json:"maintenance_date"`
	Description     string          `gorm:"type:text" json:"description"`
	CreatedAt       time.Time       `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
