package service

import (
	"context"
	"testing"
	"time"

	"autorent/pkg/logger"
	"autorent/storage/memory"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...logger.Field)    {}
func (nopLogger) Error(msg string, fields ...logger.Field)   {}
func (nopLogger) Warning(msg string, fields ...logger.Field) {}

// Valid CPFs used across the tests (both satisfy the mod-11 checksum).
const (
	testCPF       = "52998224725"
	testCPFSecond = "11122233396"
)

type env struct {
	store     *memory.Store
	vehicles  VehicleService
	customers CustomerService
	rentals   *rentalService
	reports   ReportService
	clock     time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	store := memory.New(nopLogger{})
	e := &env{
		store:     store,
		vehicles:  NewVehicleService(store, nopLogger{}),
		customers: NewCustomerService(store, nopLogger{}),
		reports:   NewReportService(store, nopLogger{}),
		clock:     time.Date(2024, 5, 10, 9, 0, 0, 0, time.Local),
	}
	e.rentals = NewRentalService(store, nopLogger{}).(*rentalService)
	e.rentals.now = func() time.Time { return e.clock }
	return e
}

func (e *env) advance(d time.Duration) {
	e.clock = e.clock.Add(d)
}

func (e *env) addVehicle(t *testing.T, plate, rate string) {
	t.Helper()
	_, err := e.vehicles.Add(context.Background(), VehicleInput{
		Plate:     plate,
		Make:      "Fiat",
		Model:     "Uno",
		Year:      "2020",
		Color:     "Red",
		DailyRate: rate,
	})
	if err != nil {
		t.Fatalf("addVehicle(%s): %v", plate, err)
	}
}

func (e *env) addCustomer(t *testing.T, cpf, email string) {
	t.Helper()
	_, err := e.customers.Add(context.Background(), CustomerInput{
		NationalID: cpf,
		Name:       "Maria Silva",
		Phone:      "11912345678",
		Email:      email,
	})
	if err != nil {
		t.Fatalf("addCustomer(%s): %v", cpf, err)
	}
}
