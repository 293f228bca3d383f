package storage

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"autorent/pkg/models"
)

type IStorage interface {
	Vehicle() IVehicleStorage
	Customer() ICustomerStorage
	Rental() IRentalStorage
	Close()
}

type IVehicleStorage interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, plate string) error
	Get(ctx context.Context, plate string) (*models.Vehicle, error)
	List(ctx context.Context, status *models.VehicleStatus) ([]*models.Vehicle, error)

	// UpdateStatus flips the vehicle status only when the current status
	// still equals from. On a lost race it fails with InvalidStateError
	// carrying the status actually found.
	UpdateStatus(ctx context.Context, plate string, from, to models.VehicleStatus) error
}

type ICustomerStorage interface {
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	Delete(ctx context.Context, nationalID string) error
	Get(ctx context.Context, nationalID string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
}

type IRentalStorage interface {
	// Open inserts the rental and flips the vehicle to rented in one
	// transaction. The generated rental id is written back to rental.
	Open(ctx context.Context, rental *models.Rental) error

	// Finalize stores the return timestamp, total charge and finalized
	// status, and flips the vehicle back to available, in one
	// transaction. The rental must still be active.
	Finalize(ctx context.Context, rental *models.Rental) error

	GetActiveByPlate(ctx context.Context, plate string) (*models.Rental, error)
	HistoryByCustomer(ctx context.Context, customerID string) ([]*models.Rental, error)

	// RevenueBetween sums finalized charges whose return date falls in
	// the inclusive [from, to] calendar range. Zero for an empty set.
	RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}
