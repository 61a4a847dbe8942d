package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// Driver is a fleet driver, optionally assigned to a single truck. Salary is
// the monthly base obligation used by the settlement computation.
type Driver struct {
	ID          uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string             `gorm:"type:text;not null" json:"name"`
	PhoneNumber string             `gorm:"type:text;not null" json:"phone_number"`
	Salary      decimal.Decimal    `gorm:"type:numeric(14,2);not null" json:"salary"`
	TruckID     *uint              `gorm:"index" json:"truck_id"`
	Status      enums.DriverStatus `gorm:"type:driver_status;not null;default:active" json:"status"`
	CreatedAt   time.Time          `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
