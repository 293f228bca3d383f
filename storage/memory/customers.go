package memory

import (
	"context"
	"sort"

	"autorent/pkg/apperr"
	"autorent/pkg/models"
)

type customerRepo struct {
	s *Store
}

func (r *customerRepo) Create(ctx context.Context, customer *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.NationalID]; ok {
		return &apperr.DuplicateKeyError{Field: "national id", Value: customer.NationalID}
	}
	for _, existing := range r.s.customers {
		if existing.Email == customer.Email {
			return &apperr.DuplicateKeyError{Field: "email", Value: customer.Email}
		}
	}
	r.s.customers[customer.NationalID] = *customer
	return nil
}

func (r *customerRepo) Update(ctx context.Context, customer *models.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[customer.NationalID]; !ok {
		return &apperr.NotFoundError{Entity: "customer", Key: customer.NationalID}
	}
	for id, existing := range r.s.customers {
		if id != customer.NationalID && existing.Email == customer.Email {
			return &apperr.DuplicateKeyError{Field: "email", Value: customer.Email}
		}
	}
	r.s.customers[customer.NationalID] = *customer
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, nationalID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.customers[nationalID]; !ok {
		return &apperr.NotFoundError{Entity: "customer", Key: nationalID}
	}
	for _, rental := range r.s.rentals {
		if rental.CustomerID == nationalID {
			return &apperr.ReferentialConflictError{Entity: "customer", Key: nationalID}
		}
	}
	delete(r.s.customers, nationalID)
	return nil
}

func (r *customerRepo) Get(ctx context.Context, nationalID string) (*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	customer, ok := r.s.customers[nationalID]
	if !ok {
		return nil, &apperr.NotFoundError{Entity: "customer", Key: nationalID}
	}
	return &customer, nil
}

func (r *customerRepo) List(ctx context.Context) ([]*models.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var customers []*models.Customer
	for _, customer := range r.s.customers {
		c := customer
		customers = append(customers, &c)
	}
	sort.Slice(customers, func(i, j int) bool {
		return customers[i].Name < customers[j].Name
	})
	return customers, nil
}
