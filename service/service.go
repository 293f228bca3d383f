package service

import (
	"autorent/pkg/logger"
	"autorent/storage"
)

type IServiceManager interface {
	Vehicle() VehicleService
	Customer() CustomerService
	Rental() RentalService
	Report() ReportService
}

type service struct {
	vehicleService  VehicleService
	customerService CustomerService
	rentalService   RentalService
	reportService   ReportService
}

func New(stg storage.IStorage, log logger.ILogger) IServiceManager {
	return &service{
		vehicleService:  NewVehicleService(stg, log),
		customerService: NewCustomerService(stg, log),
		rentalService:   NewRentalService(stg, log),
		reportService:   NewReportService(stg, log),
	}
}

func (s *service) Vehicle() VehicleService {
	return s.vehicleService
}

func (s *service) Customer() CustomerService {
	return s.customerService
}

func (s *service) Rental() RentalService {
	return s.rentalService
}

func (s *service) Report() ReportService {
	return s.reportService
}
