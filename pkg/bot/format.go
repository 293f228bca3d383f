package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"autorent/pkg/apperr"
	"autorent/pkg/models"
)

// describe renders a service error for the chat. Validation problems come
// back as the full bullet list; everything else is a single line.
func describe(err error) string {
	var valErr *apperr.ValidationError
	if errors.As(err, &valErr) {
		var sb strings.Builder
		sb.WriteString("⚠️ Please fix:\n")
		for _, m := range valErr.Messages {
			sb.WriteString("• ")
			sb.WriteString(m)
			sb.WriteByte('\n')
		}
		return sb.String()
	}
	return "⚠️ " + err.Error()
}

func money(value decimal.Decimal) string {
	return "R$ " + value.Round(2).StringFixed(2)
}

// formatCPF renders a digits-only CPF as 123.456.789-01.
func formatCPF(cpf string) string {
	if len(cpf) != 11 {
		return cpf
	}
	return fmt.Sprintf("%s.%s.%s-%s", cpf[:3], cpf[3:6], cpf[6:9], cpf[9:])
}

// formatPhone renders digits-only phones as (XX) XXXXX-XXXX or (XX) XXXX-XXXX.
func formatPhone(phone string) string {
	switch len(phone) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", phone[:2], phone[2:7], phone[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", phone[:2], phone[2:6], phone[6:])
	}
	return phone
}

func statusIcon(status models.VehicleStatus) string {
	switch status {
	case models.StatusAvailable:
		return "🟢"
	case models.StatusRented:
		return "🔑"
	case models.StatusMaintenance:
		return "🛠"
	}
	return "❔"
}

func formatVehicle(v *models.Vehicle) string {
	return fmt.Sprintf("%s %s — %s %s %d, %s — %s/day",
		statusIcon(v.Status), v.Plate, v.Make, v.Model, v.Year, v.Color, money(v.DailyRate))
}

func formatRental(r *models.Rental) string {
	line := fmt.Sprintf("#%d %s — picked up %s", r.ID, r.VehiclePlate, r.PickedUpAt.Format(models.TimeLayout))
	if r.Status == models.RentalFinalized && r.ReturnedAt != nil && r.TotalCharge != nil {
		return line + fmt.Sprintf(", returned %s, %s", r.ReturnedAt.Format(models.TimeLayout), money(*r.TotalCharge))
	}
	return line + " (active)"
}
