package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire formats for persisted timestamps and report dates.
const (
	TimeLayout = "2006-01-02 15:04:05"
	DateLayout = "2006-01-02"
)

type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalFinalized RentalStatus = "finalized"
)

type Rental struct {
	ID           int64            `json:"id"`
	VehiclePlate string           `json:"vehicle_plate"`
	CustomerID   string           `json:"customer_id"`
	PickedUpAt   time.Time        `json:"picked_up_at"`
	ReturnedAt   *time.Time       `json:"returned_at"`
	TotalCharge  *decimal.Decimal `json:"total_charge"`
	Status       RentalStatus     `json:"status"`
}
