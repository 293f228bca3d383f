package models

import "github.com/shopspring/decimal"

type VehicleStatus string

const (
	StatusAvailable   VehicleStatus = "available"
	StatusRented      VehicleStatus = "rented"
	StatusMaintenance VehicleStatus = "maintenance"
)

// allowTransition is the directed graph of legal vehicle status changes.
// There is no edge between rented and maintenance in either direction.
var allowTransition = map[VehicleStatus][]VehicleStatus{
	StatusAvailable:   {StatusRented, StatusMaintenance},
	StatusRented:      {StatusAvailable},
	StatusMaintenance: {StatusAvailable},
}

// CanTransition reports whether from -> to is a legal status change.
// A no-op transition (from == to) is not legal.
func CanTransition(from, to VehicleStatus) bool {
	for _, s := range allowTransition[from] {
		if s == to {
			return true
		}
	}
	return false
}

type Vehicle struct {
	Plate     string          `json:"plate"`
	Make      string          `json:"make"`
	Model     string          `json:"model"`
	Year      int             `json:"year"`
	Color     string          `json:"color"`
	DailyRate decimal.Decimal `json:"daily_rate"`
	Status    VehicleStatus   `json:"status"`
}
