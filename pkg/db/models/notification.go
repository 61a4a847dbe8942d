package models

import (
	"time"

	"github.com/omaralfarsi/fleetledger-backend/pkg/enums"
)

// Notification is an in-app alert emitted by the threshold evaluator. Rows
// are append-only except for the read flag.
type Notification struct {
	ID        uint                   `gorm:"primaryKey;autoIncrement" json:"id"`
	TruckID   *uint                  `gorm:"index" json:"truck_id"`
	Title     string                 `gorm:"type:text;not null" json:"title"`
	Message   string                 `gorm:"type:text;not null" json:"message"`
	Type      enums.NotificationType `gorm:"column:notification_type;type:notification_type;not null" json:"notification_type"`
	IsRead    bool                   `gorm:"not null;default:false" json:"is_read"`
	CreatedAt time.Time              `gorm:"type:timestamptz;autoCreateTime" json:"created_at"`
}
