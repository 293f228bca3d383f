package service

import (
	"context"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/pkg/validation"
	"autorent/storage"
)

// CustomerInput carries the raw form fields of a customer registration.
type CustomerInput struct {
	NationalID string
	Name       string
	Phone      string
	Email      string
}

type CustomerService interface {
	Add(ctx context.Context, input CustomerInput) (*models.Customer, error)
	Update(ctx context.Context, input CustomerInput) (*models.Customer, error)
	Remove(ctx context.Context, nationalID string) error
	Get(ctx context.Context, nationalID string) (*models.Customer, error)
}

type customerService struct {
	stg storage.ICustomerStorage
	log logger.ILogger
}

func NewCustomerService(stg storage.IStorage, log logger.ILogger) CustomerService {
	return &customerService{
		stg: stg.Customer(),
		log: log,
	}
}

func (s *customerService) parse(input CustomerInput) (*models.Customer, error) {
	var messages []string
	collect := func(err error) {
		if err != nil {
			messages = append(messages, err.Error())
		}
	}

	customer := &models.Customer{}
	var err error

	customer.NationalID, err = validation.NationalID(input.NationalID)
	collect(err)
	customer.Name, err = validation.NonEmpty(input.Name, "Name")
	collect(err)
	customer.Phone, err = validation.Phone(input.Phone)
	collect(err)
	customer.Email, err = validation.Email(input.Email)
	collect(err)

	if len(messages) > 0 {
		return nil, apperr.Validation(messages...)
	}
	return customer, nil
}

func (s *customerService) Add(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	customer, err := s.parse(input)
	if err != nil {
		return nil, err
	}
	if err := s.stg.Create(ctx, customer); err != nil {
		return nil, err
	}
	s.log.Info("customer registered", logger.String("national_id", customer.NationalID))
	return customer, nil
}

func (s *customerService) Update(ctx context.Context, input CustomerInput) (*models.Customer, error) {
	customer, err := s.parse(input)
	if err != nil {
		return nil, err
	}
	if err := s.stg.Update(ctx, customer); err != nil {
		return nil, err
	}
	s.log.Info("customer updated", logger.String("national_id", customer.NationalID))
	return customer, nil
}

func (s *customerService) Remove(ctx context.Context, nationalID string) error {
	normalized, err := validation.NationalID(nationalID)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	if err := s.stg.Delete(ctx, normalized); err != nil {
		return err
	}
	s.log.Info("customer removed", logger.String("national_id", normalized))
	return nil
}

func (s *customerService) Get(ctx context.Context, nationalID string) (*models.Customer, error) {
	normalized, err := validation.NationalID(nationalID)
	if err != nil {
		return nil, apperr.Validation(err.Error())
	}
	return s.stg.Get(ctx, normalized)
}
