package service

import (
	"context"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/pkg/validation"
	"autorent/storage"
)

// VehicleInput carries the raw form fields of a vehicle registration.
// Validation and normalization happen here, not in the caller.
type VehicleInput struct {
	Plate     string
	Make      string
	Model     string
	Year      string
	Color     string
	DailyRate string
}

type VehicleService interface {
	Add(ctx context.Context, input VehicleInput) (*models.Vehicle, error)
	Update(ctx context.Context, input VehicleInput) (*models.Vehicle, error)
	Remove(ctx context.Context, plate string) error
	Get(ctx context.Context, plate string) (*models.Vehicle, error)
}

type vehicleService struct {
	stg storage.IVehicleStorage
	log logger.ILogger
}

func NewVehicleService(stg storage.IStorage, log logger.ILogger) VehicleService {
	return &vehicleService{
		stg: stg.Vehicle(),
		log: log,
	}
}

// parse validates every field and returns the complete ordered error
// list, so the presentation layer can show all problems in one pass.
func (s *vehicleService) parse(input VehicleInput) (*models.Vehicle, error) {
	var messages []string
	collect := func(err error) {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	vehicle := &models.Vehicle{}
	var err error

	vehicle.Plate, err = validation.Plate(input.Plate)
	collect(err)
	vehicle.Make, err = validation.NonEmpty(input.Make, "Make")
	collect(err)
	vehicle.Model, err = validation.NonEmpty(input.Model, "Model")
	collect(err)
	vehicle.Year, err = validation.Year(input.Year)
	collect(err)
	vehicle.Color, err = validation.NonEmpty(input.Color, "Color")
	collect(err)
	vehicle.DailyRate, err = validation.DailyRate(input.DailyRate)
	collect(err)

	if len(messages) > 0 {
		return nil, apperr.Validation(messages...)
	}
	return vehicle, nil
}

func (s *vehicleService) Add(ctx context.Context, input VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.parse(input)
	if err != nil {
		return nil, err
	}
	if err := s.stg.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	s.log.Info("vehicle registered", logger.String("plate", vehicle.Plate))
	return vehicle, nil
}

func (s *vehicleService) Update(ctx context.Context, input VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.parse(input)
	if err != nil {
		return nil, err
	}
	if err := s.stg.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	s.log.Info("vehicle updated", logger.String("plate", vehicle.Plate))
	return vehicle, nil
}

func (s *vehicleService) Remove(ctx context.Context, plate string) error {
	normalized, err := validation.Plate(plate)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if err := s.stg.Delete(ctx, normalized); err != nil {
		return err
	}
	s.log.Info("vehicle removed", logger.String("plate", normalized))
	return nil
}

func (s *vehicleService) Get(ctx context.Context, plate string) (*models.Vehicle, error) {
	normalized, err := validation.Plate(plate)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return s.stg.Get(ctx, normalized)
}
