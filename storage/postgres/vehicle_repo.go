package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/storage"
)

type vehicleRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewVehicleRepo(db *pgxpool.Pool, log logger.ILogger) storage.IVehicleStorage {
	return &vehicleRepo{db: db, log: log}
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (plate, make, model, year, color, daily_rate, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		vehicle.Plate,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.DailyRate.String(),
		models.StatusAvailable,
	)
	if err != nil {
		if isUniqueViolation(err, "vehicles_pkey") {
			return &apperr.DuplicateKeyError{Field: "plate", Value: vehicle.Plate}
		}
		r.log.Error("failed to create vehicle", logger.String("plate", vehicle.Plate), logger.Error(err))
		return fault(err)
	}
	vehicle.Status = models.StatusAvailable
	return nil
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		UPDATE vehicles
		SET make = $1, model = $2, year = $3, color = $4, daily_rate = $5
		WHERE plate = $6
	`
	res, err := r.db.Exec(ctx, query,
		vehicle.Make,
		vehicle.Model,
		vehicle.Year,
		vehicle.Color,
		vehicle.DailyRate.String(),
		vehicle.Plate,
	)
	if err != nil {
		r.log.Error("failed to update vehicle", logger.String("plate", vehicle.Plate), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		return &apperr.NotFoundError{Entity: "vehicle", Key: vehicle.Plate}
	}
	return nil
}

func (r *vehicleRepo) Delete(ctx context.Context, plate string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE plate = $1`, plate)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &apperr.ReferentialConflictError{Entity: "vehicle", Key: plate}
		}
		r.log.Error("failed to delete vehicle", logger.String("plate", plate), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		return &apperr.NotFoundError{Entity: "vehicle", Key: plate}
	}
	return nil
}

func (r *vehicleRepo) Get(ctx context.Context, plate string) (*models.Vehicle, error) {
	query := `
		SELECT plate, make, model, year, color, daily_rate::text, status
		FROM vehicles
		WHERE plate = $1
	`
	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, plate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperr.NotFoundError{Entity: "vehicle", Key: plate}
		}
		r.log.Error("failed to get vehicle", logger.String("plate", plate), logger.Error(err))
		return nil, fault(err)
	}
	return vehicle, nil
}

func (r *vehicleRepo) List(ctx context.Context, status *models.VehicleStatus) ([]*models.Vehicle, error) {
	query := `
		SELECT plate, make, model, year, color, daily_rate::text, status
		FROM vehicles
	`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, *status)
	}
	query += ` ORDER BY make, model`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list vehicles", logger.Error(err))
		return nil, fault(err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fault(err)
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, rows.Err()
}

// UpdateStatus is a compare-and-set: the row only changes when the
// status on disk still equals from.
func (r *vehicleRepo) UpdateStatus(ctx context.Context, plate string, from, to models.VehicleStatus) error {
	res, err := r.db.Exec(ctx, `UPDATE vehicles SET status = $1 WHERE plate = $2 AND status = $3`, to, plate, from)
	if err != nil {
		r.log.Error("failed to update vehicle status", logger.String("plate", plate), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		vehicle, err := r.Get(ctx, plate)
		if err != nil {
			return err
		}
		return &apperr.InvalidStateError{Plate: plate, Current: string(vehicle.Status)}
	}
	return nil
}

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	var v models.Vehicle
	var rate string
	err := row.Scan(&v.Plate, &v.Make, &v.Model, &v.Year, &v.Color, &rate, &v.Status)
	if err != nil {
		return nil, err
	}
	v.DailyRate, err = decimal.NewFromString(rate)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
