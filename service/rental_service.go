package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/pkg/validation"
	"autorent/storage"
)

const secondsPerDay = 24 * 60 * 60

// ReturnReceipt is the outcome of a completed return. Charge keeps full
// precision; Summary carries the user-facing text with the rounded value.
type ReturnReceipt struct {
	RentalID int64
	Days     int64
	Charge   decimal.Decimal
	Summary  string
}

// RentalService is the rental lifecycle engine. It is the only component
// that mutates vehicle and rental statuses.
type RentalService interface {
	BeginRental(ctx context.Context, plate, customerID string) (*models.Rental, error)
	EndRental(ctx context.Context, plate string) (*ReturnReceipt, error)
	SendToMaintenance(ctx context.Context, plate string) error
	ReturnFromMaintenance(ctx context.Context, plate string) error
}

type rentalService struct {
	vehicles  storage.IVehicleStorage
	customers storage.ICustomerStorage
	rentals   storage.IRentalStorage
	log       logger.ILogger
	now       func() time.Time
}

func NewRentalService(stg storage.IStorage, log logger.ILogger) RentalService {
	return &rentalService{
		vehicles:  stg.Vehicle(),
		customers: stg.Customer(),
		rentals:   stg.Rental(),
		log:       log,
		now:       time.Now,
	}
}

// BeginRental opens a rental for an available vehicle. Nothing is written
// until every precondition has passed; the insert and the status flip
// then commit together.
func (s *rentalService) BeginRental(ctx context.Context, plate, customerID string) (*models.Rental, error) {
	var messages []string
	normalizedPlate, err := validation.Plate(plate)
	if err != nil {
		messages = append(messages, err.Error())
	}
	normalizedID, err := validation.NationalID(customerID)
	if err != nil {
		messages = append(messages, err.Error())
	}
	if len(messages) > 0 {
		return nil, apperr.Validation(messages...)
	}

	vehicle, err := s.vehicles.Get(ctx, normalizedPlate)
	if err != nil {
		return nil, err
	}
	if _, err := s.customers.Get(ctx, normalizedID); err != nil {
		return nil, err
	}
	if !models.CanTransition(vehicle.Status, models.StatusRented) {
		return nil, &apperr.InvalidStateError{Plate: normalizedPlate, Current: string(vehicle.Status)}
	}

	rental := &models.Rental{
		VehiclePlate: normalizedPlate,
		CustomerID:   normalizedID,
		PickedUpAt:   s.now(),
	}
	if err := s.rentals.Open(ctx, rental); err != nil {
		return nil, err
	}

	s.log.Info("rental opened",
		logger.Int64("rental_id", rental.ID),
		logger.String("plate", normalizedPlate),
		logger.String("customer_id", normalizedID),
	)
	return rental, nil
}

// EndRental closes the active rental for the plate and bills it. Every
// rental is billed at least one full day; any started day beyond a whole
// 24h boundary counts as a full day.
func (s *rentalService) EndRental(ctx context.Context, plate string) (*ReturnReceipt, error) {
	normalizedPlate, err := validation.Plate(plate)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}

	rental, err := s.rentals.GetActiveByPlate(ctx, normalizedPlate)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.Get(ctx, normalizedPlate)
	if err != nil {
		return nil, err
	}

	returnedAt := s.now()
	days := billedDays(returnedAt.Sub(rental.PickedUpAt))
	charge := vehicle.DailyRate.Mul(decimal.NewFromInt(days))

	rental.ReturnedAt = &returnedAt
	rental.TotalCharge = &charge
	if err := s.rentals.Finalize(ctx, rental); err != nil {
		return nil, err
	}

	receipt := &ReturnReceipt{
		RentalID: rental.ID,
		Days:     days,
		Charge:   charge,
		Summary:  fmt.Sprintf("Return completed. Total: R$ %s (%d day(s)).", charge.Round(2).StringFixed(2), days),
	}
	s.log.Info("rental closed",
		logger.Int64("rental_id", rental.ID),
		logger.String("plate", normalizedPlate),
		logger.Int64("days", days),
		logger.String("charge", charge.StringFixed(2)),
	)
	return receipt, nil
}

// billedDays rounds the elapsed time up to whole days, one day minimum.
func billedDays(elapsed time.Duration) int64 {
	days := int64(math.Ceil(elapsed.Seconds() / secondsPerDay))
	if days < 1 {
		days = 1
	}
	return days
}

func (s *rentalService) SendToMaintenance(ctx context.Context, plate string) error {
	normalizedPlate, err := validation.Plate(plate)
	if err != nil {
		return apperr.Validation(err.Error())
	}

	vehicle, err := s.vehicles.Get(ctx, normalizedPlate)
	if err != nil {
		return err
	}
	if !models.CanTransition(vehicle.Status, models.StatusMaintenance) {
		return &apperr.InvalidStateError{Plate: normalizedPlate, Current: string(vehicle.Status)}
	}
	if err := s.vehicles.UpdateStatus(ctx, normalizedPlate, vehicle.Status, models.StatusMaintenance); err != nil {
		return err
	}

	s.log.Info("vehicle sent to maintenance", logger.String("plate", normalizedPlate))
	return nil
}

func (s *rentalService) ReturnFromMaintenance(ctx context.Context, plate string) error {
	normalizedPlate, err := validation.Plate(plate)
	if err != nil {
		return apperr.Validation(err.Error())
	}

	vehicle, err := s.vehicles.Get(ctx, normalizedPlate)
	if err != nil {
		return err
	}
	if vehicle.Status != models.StatusMaintenance {
		return &apperr.InvalidStateError{Plate: normalizedPlate, Current: string(vehicle.Status)}
	}
	if err := s.vehicles.UpdateStatus(ctx, normalizedPlate, models.StatusMaintenance, models.StatusAvailable); err != nil {
		return err
	}

	s.log.Info("vehicle returned from maintenance", logger.String("plate", normalizedPlate))
	return nil
}
