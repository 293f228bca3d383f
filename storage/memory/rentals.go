package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"autorent/pkg/apperr"
	"autorent/pkg/models"
)

type rentalRepo struct {
	s *Store
}

func (r *rentalRepo) Open(ctx context.Context, rental *models.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vehicle, ok := r.s.vehicles[rental.VehiclePlate]
	if !ok {
		return &apperr.NotFoundError{Entity: "vehicle", Key: rental.VehiclePlate}
	}
	if _, ok := r.s.customers[rental.CustomerID]; !ok {
		return &apperr.NotFoundError{Entity: "customer", Key: rental.CustomerID}
	}
	if vehicle.Status != models.StatusAvailable {
		return &apperr.InvalidStateError{Plate: rental.VehiclePlate, Current: string(vehicle.Status)}
	}

	rental.ID = r.s.nextRentalID
	r.s.nextRentalID++
	rental.Status = models.RentalActive
	r.s.rentals[rental.ID] = *rental

	vehicle.Status = models.StatusRented
	r.s.vehicles[rental.VehiclePlate] = vehicle
	return nil
}

func (r *rentalRepo) Finalize(ctx context.Context, rental *models.Rental) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.rentals[rental.ID]
	if !ok || stored.Status != models.RentalActive {
		return &apperr.NotFoundError{Entity: "active rental", Key: rental.VehiclePlate}
	}

	stored.ReturnedAt = rental.ReturnedAt
	stored.TotalCharge = rental.TotalCharge
	stored.Status = models.RentalFinalized
	r.s.rentals[rental.ID] = stored

	if vehicle, ok := r.s.vehicles[rental.VehiclePlate]; ok {
		vehicle.Status = models.StatusAvailable
		r.s.vehicles[rental.VehiclePlate] = vehicle
	}
	rental.Status = models.RentalFinalized
	return nil
}

func (r *rentalRepo) GetActiveByPlate(ctx context.Context, plate string) (*models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rental := range r.s.rentals {
		if rental.VehiclePlate == plate && rental.Status == models.RentalActive {
			found := rental
			return &found, nil
		}
	}
	return nil, &apperr.NotFoundError{Entity: "active rental", Key: plate}
}

func (r *rentalRepo) HistoryByCustomer(ctx context.Context, customerID string) ([]*models.Rental, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var rentals []*models.Rental
	for _, rental := range r.s.rentals {
		if rental.CustomerID == customerID {
			found := rental
			rentals = append(rentals, &found)
		}
	}
	sort.Slice(rentals, func(i, j int) bool {
		return rentals[i].PickedUpAt.After(rentals[j].PickedUpAt)
	})
	return rentals, nil
}

func (r *rentalRepo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	total := decimal.Zero
	for _, rental := range r.s.rentals {
		if rental.Status != models.RentalFinalized || rental.ReturnedAt == nil || rental.TotalCharge == nil {
			continue
		}
		day := dateOnly(*rental.ReturnedAt)
		if day.Before(dateOnly(from)) || day.After(dateOnly(to)) {
			continue
		}
		total = total.Add(*rental.TotalCharge)
	}
	return total, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
