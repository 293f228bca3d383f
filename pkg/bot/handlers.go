package bot

import (
	"context"
	"fmt"
	"strings"

	tele "gopkg.in/telebot.v3"

	"autorent/pkg/models"
)

// handleText routes a message either to a menu action or to the step the
// chat session is currently waiting on.
func (b *Bot) handleText(c tele.Context) error {
	s := b.session(c.Sender().ID)
	text := strings.TrimSpace(c.Text())

	if s.State == StateIdle {
		return b.handleMenu(c, text)
	}
	return b.handleStep(c, s, text)
}

func (b *Bot) handleMenu(c tele.Context, text string) error {
	s := b.session(c.Sender().ID)
	switch text {
	case btnAddVehicle:
		s.State = StateVehiclePlate
		return c.Send("Plate? (ABC-1234 or ABC1D23)")
	case btnAddCustomer:
		s.State = StateCustomerID
		return c.Send("Customer national id (CPF)?")
	case btnRent:
		s.State = StateRentPlate
		return c.Send("Plate of the vehicle to rent?")
	case btnReturn:
		s.State = StateReturnPlate
		return c.Send("Plate of the vehicle being returned?")
	case btnMaintSend:
		s.State = StateMaintSend
		return c.Send("Plate of the vehicle going to maintenance?")
	case btnMaintReturn:
		s.State = StateMaintReturn
		return c.Send("Plate of the vehicle leaving maintenance?")
	case btnFleet:
		return b.sendFleet(c)
	case btnCustomers:
		return b.sendCustomers(c)
	case btnHistory:
		s.State = StateHistoryID
		return c.Send("Customer national id (CPF)?")
	case btnRevenue:
		s.State = StateRevenueStart
		return c.Send("Period start (YYYY-MM-DD)?")
	case btnRemoveVehicle:
		s.State = StateRemoveVehicle
		return c.Send("Plate of the vehicle to remove?")
	case btnRemoveCust:
		s.State = StateRemoveCust
		return c.Send("National id of the customer to remove?")
	}
	return c.Send("Pick an action from the menu.", b.menu())
}

func (b *Bot) handleStep(c tele.Context, s *Session, text string) error {
	ctx := context.Background()

	switch s.State {
	// Vehicle registration flow.
	case StateVehiclePlate:
		s.Vehicle.Plate = text
		s.State = StateVehicleMake
		return c.Send("Make?")
	case StateVehicleMake:
		s.Vehicle.Make = text
		s.State = StateVehicleModel
		return c.Send("Model?")
	case StateVehicleModel:
		s.Vehicle.Model = text
		s.State = StateVehicleYear
		return c.Send("Year?")
	case StateVehicleYear:
		s.Vehicle.Year = text
		s.State = StateVehicleColor
		return c.Send("Color?")
	case StateVehicleColor:
		s.Vehicle.Color = text
		s.State = StateVehicleRate
		return c.Send("Daily rate?")
	case StateVehicleRate:
		s.Vehicle.DailyRate = text
		vehicle, err := b.Svc.Vehicle().Add(ctx, s.Vehicle)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send(fmt.Sprintf("✅ Vehicle %s registered at %s/day.", vehicle.Plate, money(vehicle.DailyRate)), b.menu())

	// Customer registration flow.
	case StateCustomerID:
		s.Customer.NationalID = text
		s.State = StateCustomerName
		return c.Send("Name?")
	case StateCustomerName:
		s.Customer.Name = text
		s.State = StateCustomerPhone
		return c.Send("Phone?")
	case StateCustomerPhone:
		s.Customer.Phone = text
		s.State = StateCustomerEmail
		return c.Send("Email?")
	case StateCustomerEmail:
		s.Customer.Email = text
		customer, err := b.Svc.Customer().Add(ctx, s.Customer)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send(fmt.Sprintf("✅ Customer %s (%s) registered.", customer.Name, formatCPF(customer.NationalID)), b.menu())

	// Rental lifecycle.
	case StateRentPlate:
		s.Vehicle.Plate = text
		s.State = StateRentCustomer
		return c.Send("Customer national id (CPF)?")
	case StateRentCustomer:
		rental, err := b.Svc.Rental().BeginRental(ctx, s.Vehicle.Plate, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send(fmt.Sprintf("✅ Rental #%d opened for %s at %s.",
			rental.ID, rental.VehiclePlate, rental.PickedUpAt.Format(models.TimeLayout)), b.menu())
	case StateReturnPlate:
		receipt, err := b.Svc.Rental().EndRental(ctx, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send("✅ "+receipt.Summary, b.menu())

	// Maintenance transitions.
	case StateMaintSend:
		err := b.Svc.Rental().SendToMaintenance(ctx, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send("🛠 Vehicle sent to maintenance.", b.menu())
	case StateMaintReturn:
		err := b.Svc.Rental().ReturnFromMaintenance(ctx, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send("✅ Vehicle available again.", b.menu())

	// Reports.
	case StateHistoryID:
		history, err := b.Svc.Report().RentalHistory(ctx, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send(formatHistory(history), b.menu())
	case StateRevenueStart:
		s.Start = text
		s.State = StateRevenueEnd
		return c.Send("Period end (YYYY-MM-DD)?")
	case StateRevenueEnd:
		total, err := b.Svc.Report().RevenueInPeriod(ctx, s.Start, text)
		start := s.Start
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send(fmt.Sprintf("💰 Revenue %s to %s: %s", start, text, money(total)), b.menu())

	// Removals.
	case StateRemoveVehicle:
		err := b.Svc.Vehicle().Remove(ctx, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send("🗑 Vehicle removed.", b.menu())
	case StateRemoveCust:
		err := b.Svc.Customer().Remove(ctx, text)
		b.reset(c.Sender().ID)
		if err != nil {
			return c.Send(describe(err), b.menu())
		}
		return c.Send("🗑 Customer removed.", b.menu())
	}

	b.reset(c.Sender().ID)
	return c.Send("Pick an action from the menu.", b.menu())
}

func (b *Bot) sendFleet(c tele.Context) error {
	vehicles, err := b.Svc.Report().ListVehicles(context.Background(), nil)
	if err != nil {
		return c.Send(describe(err), b.menu())
	}
	if len(vehicles) == 0 {
		return c.Send("📭 No vehicles registered.", b.menu())
	}
	var sb strings.Builder
	sb.WriteString("📋 Fleet:\n")
	for _, v := range vehicles {
		sb.WriteString(formatVehicle(v))
		sb.WriteByte('\n')
	}
	return c.Send(sb.String(), b.menu())
}

func (b *Bot) sendCustomers(c tele.Context) error {
	customers, err := b.Svc.Report().ListCustomers(context.Background())
	if err != nil {
		return c.Send(describe(err), b.menu())
	}
	if len(customers) == 0 {
		return c.Send("📭 No customers registered.", b.menu())
	}
	var sb strings.Builder
	sb.WriteString("👥 Customers:\n")
	for _, cust := range customers {
		sb.WriteString(fmt.Sprintf("• %s — %s — %s\n", cust.Name, formatCPF(cust.NationalID), formatPhone(cust.Phone)))
	}
	return c.Send(sb.String(), b.menu())
}

func formatHistory(history []*models.Rental) string {
	if len(history) == 0 {
		return "📭 No rentals for this customer."
	}
	var sb strings.Builder
	sb.WriteString("📖 Rental history:\n")
	for _, r := range history {
		sb.WriteString(formatRental(r))
		sb.WriteByte('\n')
	}
	return sb.String()
}
