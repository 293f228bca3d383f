package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"autorent/pkg/apperr"
	"autorent/pkg/logger"
	"autorent/pkg/models"
	"autorent/storage"
)

type customerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCustomerRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICustomerStorage {
	return &customerRepo{db: db, log: log}
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (national_id, name, phone, email)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(ctx, query,
		customer.NationalID,
		customer.Name,
		customer.Phone,
		customer.Email,
	)
	if err != nil {
		if isUniqueViolation(err, "customers_pkey") {
			return &apperr.DuplicateKeyError{Field: "national id", Value: customer.NationalID}
		}
		if isUniqueViolation(err, "customers_email_key") {
			return &apperr.DuplicateKeyError{Field: "email", Value: customer.Email}
		}
		r.log.Error("failed to create customer", logger.String("national_id", customer.NationalID), logger.Error(err))
		return fault(err)
	}
	return nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	query := `
		UPDATE customers
		SET name = $1, phone = $2, email = $3
		WHERE national_id = $4
	`
	res, err := r.db.Exec(ctx, query,
		customer.Name,
		customer.Phone,
		customer.Email,
		customer.NationalID,
	)
	if err != nil {
		if isUniqueViolation(err, "customers_email_key") {
			return &apperr.DuplicateKeyError{Field: "email", Value: customer.Email}
		}
		r.log.Error("failed to update customer", logger.String("national_id", customer.NationalID), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		return &apperr.NotFoundError{Entity: "customer", Key: customer.NationalID}
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, nationalID string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM customers WHERE national_id = $1`, nationalID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return &apperr.ReferentialConflictError{Entity: "customer", Key: nationalID}
		}
		r.log.Error("failed to delete customer", logger.String("national_id", nationalID), logger.Error(err))
		return fault(err)
	}
	if res.RowsAffected() == 0 {
		return &apperr.NotFoundError{Entity: "customer", Key: nationalID}
	}
	return nil
}

func (r *customerRepo) Get(ctx context.Context, nationalID string) (*models.Customer, error) {
	var customer models.Customer
	query := `
		SELECT national_id, name, phone, email
		FROM customers
		WHERE national_id = $1
	`
	err := r.db.QueryRow(ctx, query, nationalID).Scan(
		&customer.NationalID,
		&customer.Name,
		&customer.Phone,
		&customer.Email,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &apperr.NotFoundError{Entity: "customer", Key: nationalID}
		}
		r.log.Error("failed to get customer", logger.String("national_id", nationalID), logger.Error(err))
		return nil, fault(err)
	}
	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	query := `
		SELECT national_id, name, phone, email
		FROM customers
		ORDER BY name
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("failed to list customers", logger.Error(err))
		return nil, fault(err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.NationalID, &c.Name, &c.Phone, &c.Email); err != nil {
			return nil, fault(err)
		}
		customers = append(customers, &c)
	}
	return customers, rows.Err()
}
