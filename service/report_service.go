package service

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/pkg/validation"
	"autorent/storage"
)

// ReportService serves the read-only views. Storage faults on reads are
// logged and downgraded to empty results; they never reach the caller.
type ReportService interface {
	ListVehicles(ctx context.Context, status *models.VehicleStatus) ([]*models.Vehicle, error)
	ListCustomers(ctx context.Context) ([]*models.Customer, error)
	RentalHistory(ctx context.Context, customerID string) ([]*models.Rental, error)
	RevenueInPeriod(ctx context.Context, start, end string) (decimal.Decimal, error)
}

type reportService struct {
	vehicles  storage.IVehicleStorage
	customers storage.ICustomerStorage
	rentals   storage.IRentalStorage
	log       logger.ILogger
}

func NewReportService(stg storage.IStorage, log logger.ILogger) ReportService {
	return &reportService{
		vehicles:  stg.Vehicle(),
		customers: stg.Customer(),
		rentals:   stg.Rental(),
		log:       log,
	}
}

func (s *reportService) ListVehicles(ctx context.Context, status *models.VehicleStatus) ([]*models.Vehicle, error) {
	vehicles, err := s.vehicles.List(ctx, status)
	if err != nil {
		if isFault(err) {
			s.log.Error("vehicle listing degraded to empty result", logger.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return vehicles, nil
}

func (s *reportService) ListCustomers(ctx context.Context) ([]*models.Customer, error) {
	customers, err := s.customers.List(ctx)
	if err != nil {
		if isFault(err) {
			s.log.Error("customer listing degraded to empty result", logger.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return customers, nil
}

func (s *reportService) RentalHistory(ctx context.Context, customerID string) ([]*models.Rental, error) {
	normalizedID, err := validation.NationalID(customerID)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	rentals, err := s.rentals.HistoryByCustomer(ctx, normalizedID)
	if err != nil {
		if isFault(err) {
			s.log.Error("rental history degraded to empty result", logger.Error(err))
			return nil, nil
		}
		return nil, err
	}
	return rentals, nil
}

// RevenueInPeriod sums finalized charges whose return date falls within
// the inclusive [start, end] calendar range. An empty period yields zero.
func (s *reportService) RevenueInPeriod(ctx context.Context, start, end string) (decimal.Decimal, error) {
	var messages []string
	from, err := time.ParseInLocation(models.DateLayout, start, time.Local)
	if err != nil {
		messages = append(messages, "invalid start date, use 'YYYY-MM-DD'")
	}
	to, err := time.ParseInLocation(models.DateLayout, end, time.Local)
	if err != nil {
		messages = append(messages, "invalid end date, use 'YYYY-MM-DD'")
	}
	if len(messages) > 0 {
		return decimal.Zero, apperr.Validation(messages...)
	}

	total, err := s.rentals.RevenueBetween(ctx, from, to)
	if err != nil {
		if isFault(err) {
			s.log.Error("revenue report degraded to zero", logger.Error(err))
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return total, nil
}

func isFault(err error) bool {
	var fault *apperr.StorageFault
	return errors.As(err, &fault)
}
