package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"autorent/pkg/apperr"
	"autorent/pkg/models"
)

func TestBeginRental(t *testing.T) {
	e := newEnv(t)
	e.addVehicle(t, "ABC-1234", "100.00")
	e.addCustomer(t, testCPF, "maria@example.com")

	rental, err := e.rentals.BeginRental(context.Background(), "abc-1234", "529.982.247-25")
	if err != nil {
		t.Fatalf("BeginRental: %v", err)
	}
	if rental.ID == 0 {
		t.Error("expected assigned rental id")
	}
	if rental.Status != models.RentalActive {
		t.Errorf("rental status: got %s, want %s", rental.Status, models.RentalActive)
	}
	if rental.VehiclePlate != "ABC-1234" || rental.CustomerID != testCPF {
		t.Errorf("rental references not normalized: %+v", rental)
	}

	vehicle, err := e.vehicles.Get(context.Background(), "ABC-1234")
	if err != nil {
		t.Fatalf("Get vehicle: %v", err)
	}
	if vehicle.Status != models.StatusRented {
		t.Errorf("vehicle status: got %s, want %s", vehicle.Status, models.StatusRented)
	}
}

func TestBeginRentalTwiceFailsAndKeepsStatus(t *testing.T) {
	e := newEnv(t)
	e.addVehicle(t, "ABC-1234", "100.00")
	e.addCustomer(t, testCPF, "maria@example.com")

	if _, err := e.rentals.BeginRental(context.Background(), "ABC-1234", testCPF); err != nil {
		t.Fatalf("first BeginRental: %v", err)
	}

	_, err := e.rentals.BeginRental(context.Background(), "ABC-1234", testCPF)
	var stateErr *apperr.InvalidStateError
	if !errors.As(err, &stateErr) {
		t.Fatalf("second BeginRental: got %v, want InvalidStateError", err)
	}
	if stateErr.Current != string(models.StatusRented) {
		t.Errorf("InvalidStateError.Current: got %q, want rented", stateErr.Current)
	}

	vehicle, _ := e.vehicles.Get(context.Background(), "ABC-1234")
	if vehicle.Status != models.StatusRented {
		t.Errorf("vehicle status after failed second rental: got %s, want rented", vehicle.Status)
	}
}

func TestBeginRentalValidationAccumulates(t *testing.T) {
	e := newEnv(t)

	_, err := e.rentals.BeginRental(context.Background(), "bogus", "123")
	var valErr *apperr.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("got %v, want ValidationError", err)
	}
	if len(valErr.Messages) != 2 {
		t.Errorf("expected both format problems reported, got %v", valErr.Messages)
	}
}

func TestBeginRentalMissingEntities(t *testing.T) {
	e := newEnv(t)
	e.addVehicle(t, "ABC-1234", "100.00")

	_, err := e.rentals.BeginRental(context.Background(), "ZZZ-9999", testCPF)
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) || notFound.Entity != "vehicle" {
		t.Errorf("unknown plate: got %v, want vehicle NotFoundError", err)
	}

	_, err = e.rentals.BeginRental(context.Background(), "ABC-1234", testCPF)
	if !errors.As(err, &notFound) || notFound.Entity != "customer" {
		t.Errorf("unknown customer: got %v, want customer NotFoundError", err)
	}

	vehicle, _ := e.vehicles.Get(context.Background(), "ABC-1234")
	if vehicle.Status != models.StatusAvailable {
		t.Errorf("failed preconditions must leave vehicle untouched, status %s", vehicle.Status)
	}
}

func TestEndRentalBilling(t *testing.T) {
	cases := []struct {
		name    string
		elapsed time.Duration
		days    int64
		charge  string
	}{
		{"one second", time.Second, 1, "100.00"},
		{"exactly 24h", 24 * time.Hour, 1, "100.00"},
		{"24h and one second", 24*time.Hour + time.Second, 2, "200.00"},
		{"25 hours", 25 * time.Hour, 2, "200.00"},
		{"three days", 72 * time.Hour, 3, "300.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEnv(t)
			e.addVehicle(t, "ABC-1234", "100.00")
			e.addCustomer(t, testCPF, "maria@example.com")

			if _, err := e.rentals.BeginRental(context.Background(), "ABC-1234", testCPF); err != nil {
				t.Fatalf("BeginRental: %v", err)
			}
			e.advance(tc.elapsed)

			receipt, err := e.rentals.EndRental(context.Background(), "ABC-1234")
			if err != nil {
				t.Fatalf("EndRental: %v", err)
			}
			if receipt.Days != tc.days {
				t.Errorf("days: got %d, want %d", receipt.Days, tc.days)
			}
			if got := receipt.Charge.StringFixed(2); got != tc.charge {
				t.Errorf("charge: got %s, want %s", got, tc.charge)
			}

			vehicle, _ := e.vehicles.Get(context.Background(), "ABC-1234")
			if vehicle.Status != models.StatusAvailable {
				t.Errorf("vehicle status after return: got %s, want available", vehicle.Status)
			}
		})
	}
}

func TestEndRentalTwice(t *testing.T) {
	e := newEnv(t)
	e.addVehicle(t, "ABC-1234", "100.00")
	e.addCustomer(t, testCPF, "maria@example.com")

	if _, err := e.rentals.BeginRental(context.Background(), "ABC-1234", testCPF); err != nil {
		t.Fatalf("BeginRental: %v", err)
	}
	e.advance(26 * time.Hour)

	first, err := e.rentals.EndRental(context.Background(), "ABC-1234")
	if err != nil {
		t.Fatalf("first EndRental: %v", err)
	}

	_, err = e.rentals.EndRental(context.Background(), "ABC-1234")
	var notFound *apperr.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("second EndRental: got %v, want NotFoundError", err)
	}

	// The stored charge of the first return must be untouched.
	history, err := e.reports.RentalHistory(context.Background(), testCPF)
	if err != nil {
		t.Fatalf("RentalHistory: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history length: got %d, want 1", len(history))
	}
	if history[0].TotalCharge == nil || !history[0].TotalCharge.Equal(first.Charge) {
		t.Errorf("stored charge changed: got %v, want %s", history[0].TotalCharge, first.Charge)
	}
}

func TestMaintenanceTransitions(t *testing.T) {
	e := newEnv(t)
	e.addVehicle(t, "ABC-1234", "100.00")
	e.addCustomer(t, testCPF, "maria@example.com")
	ctx := context.Background()

	if err := e.rentals.SendToMaintenance(ctx, "ABC-1234"); err != nil {
		t.Fatalf("SendToMaintenance: %v", err)
	}
	vehicle, _ := e.vehicles.Get(ctx, "ABC-1234")
	if vehicle.Status != models.StatusMaintenance {
		t.Fatalf("status after send: got %s, want maintenance", vehicle.Status)
	}

	// Already in maintenance.
	var stateErr *apperr.InvalidStateError
	if err := e.rentals.SendToMaintenance(ctx, "ABC-1234"); !errors.As(err, &stateErr) {
		t.Errorf("double send: got %v, want InvalidStateError", err)
	}

	// A vehicle in maintenance cannot be rented.
	if _, err := e.rentals.BeginRental(ctx, "ABC-1234", testCPF); !errors.As(err, &stateErr) {
		t.Errorf("rent while in maintenance: got %v, want InvalidStateError", err)
	} else if stateErr.Current != string(models.StatusMaintenance) {
		t.Errorf("InvalidStateError.Current: got %q, want maintenance", stateErr.Current)
	}

	if err := e.rentals.ReturnFromMaintenance(ctx, "ABC-1234"); err != nil {
		t.Fatalf("ReturnFromMaintenance: %v", err)
	}
	vehicle, _ = e.vehicles.Get(ctx, "ABC-1234")
	if vehicle.Status != models.StatusAvailable {
		t.Fatalf("status after return: got %s, want available", vehicle.Status)
	}

	// Not in maintenance anymore.
	if err := e.rentals.ReturnFromMaintenance(ctx, "ABC-1234"); !errors.As(err, &stateErr) {
		t.Errorf("return while available: got %v, want InvalidStateError", err)
	}

	// No direct rented -> maintenance edge.
	if _, err := e.rentals.BeginRental(ctx, "ABC-1234", testCPF); err != nil {
		t.Fatalf("BeginRental: %v", err)
	}
	if err := e.rentals.SendToMaintenance(ctx, "ABC-1234"); !errors.As(err, &stateErr) {
		t.Errorf("send while rented: got %v, want InvalidStateError", err)
	} else if stateErr.Current != string(models.StatusRented) {
		t.Errorf("InvalidStateError.Current: got %q, want rented", stateErr.Current)
	}
}

func TestRentalEndToEnd(t *testing.T) {
	e := newEnv(t)
	e.addVehicle(t, "ABC-1234", "100.00")
	e.addCustomer(t, testCPFSecond, "joao@example.com")
	ctx := context.Background()

	rental, err := e.rentals.BeginRental(ctx, "ABC-1234", testCPFSecond)
	if err != nil {
		t.Fatalf("BeginRental: %v", err)
	}

	vehicle, _ := e.vehicles.Get(ctx, "ABC-1234")
	if vehicle.Status != models.StatusRented {
		t.Fatalf("status after rental: got %s, want rented", vehicle.Status)
	}

	e.advance(72 * time.Hour)
	receipt, err := e.rentals.EndRental(ctx, "ABC-1234")
	if err != nil {
		t.Fatalf("EndRental: %v", err)
	}
	if receipt.RentalID != rental.ID {
		t.Errorf("receipt rental id: got %d, want %d", receipt.RentalID, rental.ID)
	}
	if got := receipt.Charge.StringFixed(2); got != "300.00" {
		t.Errorf("charge: got %s, want 300.00", got)
	}
	if receipt.Days != 3 {
		t.Errorf("days: got %d, want 3", receipt.Days)
	}

	vehicle, _ = e.vehicles.Get(ctx, "ABC-1234")
	if vehicle.Status != models.StatusAvailable {
		t.Errorf("status after return: got %s, want available", vehicle.Status)
	}
}
