package models

import "testing"

func TestCanTransition(t *testing.T) {
	allowed := [][2]VehicleStatus{
		{StatusAvailable, StatusRented},
		{StatusAvailable, StatusMaintenance},
		{StatusRented, StatusAvailable},
		{StatusMaintenance, StatusAvailable},
	}
	for _, tr := range allowed {
		if !CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s allowed", tr[0], tr[1])
		}
	}

	forbidden := [][2]VehicleStatus{
		{StatusRented, StatusMaintenance},
		{StatusMaintenance, StatusRented},
		{StatusRented, StatusRented},
		{StatusAvailable, StatusAvailable},
		{StatusMaintenance, StatusMaintenance},
		{VehicleStatus("unknown"), StatusAvailable},
	}
	for _, tr := range forbidden {
		if CanTransition(tr[0], tr[1]) {
			t.Errorf("expected %s -> %s not allowed", tr[0], tr[1])
		}
	}
}
