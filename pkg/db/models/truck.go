package models

import (
	"time"

	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// Truck is a tractor unit in the fleet. PlateNumber is unique across the
// whole fleet.
type Truck struct {
	ID                  uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckType           string            `gorm:"type:text;not null" json:"truck_type"`
	PlateNumber         string            `gorm:"type:text;not null;uniqueIndex:idx_trucks_plate_number" json:"plate_number"`
	Status              enums.TruckStatus `gorm:"type:truck_status;not null;default:active" json:"status"`
	LastMaintenanceDate *time.Time        `gorm:"type:timestamptz" json:"last_maintenance_date"`
	TotalShipments      int               `gorm:"not null;default:0" json:"total_shipments"`
	CreatedAt           time.Time         `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time         `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
