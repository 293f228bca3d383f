package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/storage"
)

type rentalRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewRentalRepo(db *pgxpool.Pool, log logger.ILogger) storage.IRentalStorage {
	return &rentalRepo{db: db, log: log}
}

// Open inserts the rental row and flips the vehicle to rented inside one
// transaction. The partial unique index on active rentals backstops the
// guarded vehicle update, so a lost race can never leave two active
// rentals on the same plate.
func (r *rentalRepo) Open(ctx context.Context, rental *models.Rental) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("failed to begin rental transaction", logger.Error(err))
		return fault(err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rentals (vehicle_plate, customer_id, picked_up_at, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err = tx.QueryRow(ctx, query,
		rental.VehiclePlate,
		rental.CustomerID,
		rental.PickedUpAt,
		models.RentalActive,
	).Scan(&rental.ID)
	if err != nil {
		if isUniqueViolation(err, "rentals_one_active_idx") {
			return &apperr.InvalidStateError{Plate: rental.VehiclePlate, Current: string(models.StatusRented)}
		}
		if isForeignKeyViolation(err) {
			return &apperr.NotFoundError{Entity: "vehicle or customer", Key: rental.VehiclePlate}
		}
		r.log.Error("failed to insert rental", logger.String("plate", rental.VehiclePlate), logger.Error(err))
		return fault(err)
	}

	res, err := tx.Exec(ctx,
		`UPDATE vehicles SET status = $1 WHERE plate = $2 AND status = $3`,
		models.StatusRented, rental.VehiclePlate, models.StatusAvailable,
	)
	if err != nil {
		r.log.Error("failed to mark vehicle rented", logger.String("plate", rental.VehiclePlate), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		var current models.VehicleStatus
		if err := tx.QueryRow(ctx, `SELECT status FROM vehicles WHERE plate = $1`, rental.VehiclePlate).Scan(&current); err != nil {
			return fault(err)
		}
		return &apperr.InvalidStateError{Plate: rental.VehiclePlate, Current: string(current)}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit rental open", logger.String("plate", rental.VehiclePlate), logger.Error(err))
		return fault(err)
	}
	rental.Status = models.RentalActive
	return nil
}

// Finalize closes the rental and releases the vehicle inside one
// transaction. The rental must still be active.
func (r *rentalRepo) Finalize(ctx context.Context, rental *models.Rental) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("failed to begin return transaction", logger.Error(err))
		return fault(err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE rentals
		SET returned_at = $1, total_charge = $2, status = $3
		WHERE id = $4 AND status = $5
	`
	res, err := tx.Exec(ctx, query,
		rental.ReturnedAt,
		rental.TotalCharge.String(),
		models.RentalFinalized,
		rental.ID,
		models.RentalActive,
	)
	if err != nil {
		r.log.Error("failed to finalize rental", logger.Int64("id", rental.ID), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		return &apperr.NotFoundError{Entity: "active rental", Key: rental.VehiclePlate}
	}

	_, err = tx.Exec(ctx,
		`UPDATE vehicles SET status = $1 WHERE plate = $2`,
		models.StatusAvailable, rental.VehiclePlate,
	)
	if err != nil {
		r.log.Error("failed to release vehicle", logger.String("plate", rental.VehiclePlate), logger.Error(err))
		return fault(err)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("failed to commit rental finalize", logger.Int64("id", rental.ID), logger.Error(err))
		return fault(err)
	}
	rental.Status = models.RentalFinalized
	return nil
}

func (r *rentalRepo) GetActiveByPlate(ctx context.Context, plate string) (*models.Rental, error) {
	query := `
		SELECT id, vehicle_plate, customer_id, picked_up_at, returned_at, total_charge::text, status
		FROM rentals
		WHERE vehicle_plate = $1 AND status = $2
	`
	rental, err := scanRental(r.db.QueryRow(ctx, query, plate, models.RentalActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperr.NotFoundError{Entity: "active rental", Key: plate}
		}
		r.log.Error("failed to get active rental", logger.String("plate", plate), logger.Error(err))
		return nil, fault(err)
	}
	return rental, nil
}

func (r *rentalRepo) HistoryByCustomer(ctx context.Context, customerID string) ([]*models.Rental, error) {
	query := `
		SELECT id, vehicle_plate, customer_id, picked_up_at, returned_at, total_charge::text, status
		FROM rentals
		WHERE customer_id = $1
		ORDER BY picked_up_at DESC
	`
	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		r.log.Error("failed to load rental history", logger.String("customer_id", customerID), logger.Error(err))
		return nil, fault(err)
	}
	defer rows.Close()

	var rentals []*models.Rental
	for rows.Next() {
		rental, err := scanRental(rows)
		if err != nil {
			return nil, fault(err)
		}
		rentals = append(rentals, rental)
	}
	return rentals, rows.Err()
}

func (r *rentalRepo) RevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(total_charge), 0)::text
		FROM rentals
		WHERE status = $1 AND returned_at::date BETWEEN $2::date AND $3::date
	`
	var sum string
	err := r.db.QueryRow(ctx, query, models.RentalFinalized, from, to).Scan(&sum)
	if err != nil {
		r.log.Error("failed to sum revenue", logger.Error(err))
		return decimal.Zero, fault(err)
	}
	total, err := decimal.NewFromString(sum)
	if err != nil {
		return decimal.Zero, fault(err)
	}
	return total, nil
}

func scanRental(row pgx.Row) (*models.Rental, error) {
	var rental models.Rental
	var charge *string
	err := row.Scan(
		&rental.ID,
		&rental.VehiclePlate,
		&rental.CustomerID,
		&rental.PickedUpAt,
		&rental.ReturnedAt,
		&charge,
		&rental.Status,
	)
	if err != nil {
		return nil, err
	}
	if charge != nil {
		total, err := decimal.NewFromString(*charge)
		if err != nil {
			return nil, err
		}
		rental.TotalCharge = &total
	}
	return &rental, nil
}
