// Package memory is an in-memory implementation of storage.IStorage.
// It backs the service tests and STORAGE_DRIVER=memory ephemeral runs.
// All entity views share one mutex, so the rental open/finalize pairs
// are as atomic as their SQL counterparts.
package memory

import (
	"sync"

	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/storage"
)

type Store struct {
	mu           sync.Mutex
	vehicles     map[string]models.Vehicle
	customers    map[string]models.Customer
	rentals      map[int64]models.Rental
	nextRentalID int64
	log          logger.ILogger
}

func New(log logger.ILogger) *Store {
	return &Store{
		vehicles:     make(map[string]models.Vehicle),
		customers:    make(map[string]models.Customer),
		rentals:      make(map[int64]models.Rental),
		nextRentalID: 1,
		log:          log,
	}
}

var _ storage.IStorage = (*Store)(nil)

func (s *Store) Vehicle() storage.IVehicleStorage   { return &vehicleRepo{s} }
func (s *Store) Customer() storage.ICustomerStorage { return &customerRepo{s} }
func (s *Store) Rental() storage.IRentalStorage     { return &rentalRepo{s} }

func (s *Store) Close() {}
