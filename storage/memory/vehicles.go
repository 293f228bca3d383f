package memory

import (
	"context"
	"sort"

	"autorent/pkg/apperr"
	"autorent/pkg/models"
)

type vehicleRepo struct {
	s *Store
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vehicles[vehicle.Plate]; ok {
		return &apperr.DuplicateKeyError{Field: "plate", Value: vehicle.Plate}
	}
	vehicle.Status = models.StatusAvailable
	r.s.vehicles[vehicle.Plate] = *vehicle
	return nil
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.vehicles[vehicle.Plate]
	if !ok {
		return &apperr.NotFoundError{Entity: "vehicle", Key: vehicle.Plate}
	}
	// Status is owned by the lifecycle engine, not by updates.
	vehicle.Status = existing.Status
	r.s.vehicles[vehicle.Plate] = *vehicle
	return nil
}

func (r *vehicleRepo) Delete(ctx context.Context, plate string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vehicles[plate]; !ok {
		return &apperr.NotFoundError{Entity: "vehicle", Key: plate}
	}
	for _, rental := range r.s.rentals {
		if rental.VehiclePlate == plate {
			return &apperr.ReferentialConflictError{Entity: "vehicle", Key: plate}
		}
	}
	delete(r.s.vehicles, plate)
	return nil
}

func (r *vehicleRepo) Get(ctx context.Context, plate string) (*models.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vehicle, ok := r.s.vehicles[plate]
	if !ok {
		return nil, &apperr.NotFoundError{Entity: "vehicle", Key: plate}
	}
	return &vehicle, nil
}

func (r *vehicleRepo) List(ctx context.Context, status *models.VehicleStatus) ([]*models.Vehicle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var vehicles []*models.Vehicle
	for _, vehicle := range r.s.vehicles {
		if status != nil && vehicle.Status != *status {
			continue
		}
		v := vehicle
		vehicles = append(vehicles, &v)
	}
	sort.Slice(vehicles, func(i, j int) bool {
		if vehicles[i].Make != vehicles[j].Make {
			return vehicles[i].Make < vehicles[j].Make
		}
		return vehicles[i].Model < vehicles[j].Model
	})
	return vehicles, nil
}

func (r *vehicleRepo) UpdateStatus(ctx context.Context, plate string, from, to models.VehicleStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	vehicle, ok := r.s.vehicles[plate]
	if !ok {
		return &apperr.NotFoundError{Entity: "vehicle", Key: plate}
	}
	if vehicle.Status != from {
		return &apperr.InvalidStateError{Plate: plate, Current: string(vehicle.Status)}
	}
	vehicle.Status = to
	r.s.vehicles[plate] = vehicle
	return nil
}
