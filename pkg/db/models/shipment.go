package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// Shipment is one cargo run. Revenue on the row is the agreed freight price;
// driver performance metrics sum this field directly, independent of the
// revenues ledger table.
type Shipment struct {
	ID           uint                 `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckID      uint                 `gorm:"not null;index" json:"truck_id"`
	DriverID     uint                 `gorm:"not null;index" json:"driver_id"`
	FromLocation string               `gorm:"type:text;not null" json:"from_location"`
	ToLocation   string               `gorm:"type:text;not null" json:"to_location"`
	Cargo        string               `gorm:"type:text;not null" json:"cargo"`
	Revenue      decimal.Decimal      `gorm:"type:numeric(14,2);not null" json:"revenue"`
	Status       enums.ShipmentStatus `gorm:"type:shipment_status;not null;default:pending" json:"status"`
	ShipmentDate time.Time            `gorm:"type:timestamptz;not null;index" json:"shipment_date"`
	CreatedAt    time.Time            `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time            `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
