package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// Expense is a ledger row for money spent. Truck-scoped always; driver-scoped
// when DriverID is set. The settlement computation subtracts only
// driver-scoped expenses from a driver's balance.
type Expense struct {
	ID          uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckID     uint              `gorm:"not null;index" json:"truck_id"`
	DriverID    *uint             `gorm:"index" json:"driver_id"`
	ExpenseType enums.ExpenseType `gorm:"type:expense_type;not null" json:"expense_type"`
	Amount      decimal.Decimal   `gorm:"type:numeric(14,2);not null" json:"amount"`
	ExpenseDate time.Time         `gorm:"type:timestamptz;not null;index" json:"expense_date"`
	Description string            `gorm:"type:text" json:"description"`
	CreatedAt   time.Time         `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time         `gorm:"type:timestamptz;autoUpdateTime" json:"updated_at"`
}
