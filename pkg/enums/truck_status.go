package enums

import "fmt"

// TruckStatus maps to the truck_status enum in Postgres.
type TruckStatus string

const (
	TruckStatusActive      TruckStatus = "active"
	TruckStatusMaintenance TruckStatus = "maintenance"
	TruckStatusStopped     TruckStatus = "stopped"
)

var validTruckStatuses = []TruckStatus{
	TruckStatusActive,
	TruckStatusMaintenance,
	TruckStatusStopped,
}

// IsValid checks whether the given status matches the canonical enum.
func (s TruckStatus) IsValid() bool {
	for _, candidate := range validTruckStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseTruckStatus converts raw strings into TruckStatus.
func ParseTruckStatus(value string) (TruckStatus, error) {
	for _, candidate := range validTruckStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid truck status %q", value)
}
