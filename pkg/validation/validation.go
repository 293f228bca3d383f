// Package validation holds the pure field validators used by the
// registration and rental services. Each validator takes the raw value as
// typed by the user and returns the normalized canonical form together
// with a nil error, or a descriptive error. No validator touches storage.
package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	legacyPlateRe   = regexp.MustCompile(`^[A-Z]{3}-[0-9]{4}$`)
	mercosurPlateRe = regexp.MustCompile(`^[A-Z]{3}[0-9][A-Z][0-9]{2}$`)
	emailRe         = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	nonDigitRe      = regexp.MustCompile(`[^0-9]`)
)

// Plate accepts the legacy format ABC-1234 and the Mercosur format
// ABC1D23. The normalized form is uppercased and trimmed.
func Plate(raw string) (string, error) {
	plate := strings.ToUpper(strings.TrimSpace(raw))
	if legacyPlateRe.MatchString(plate) || mercosurPlateRe.MatchString(plate) {
		return plate, nil
	}
	return "", fmt.Errorf("invalid plate format, use 'ABC-1234' or 'ABC1D23'")
}

// Year must parse as an integer between 1950 and next year inclusive.
func Year(raw string) (int, error) {
	year, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("year must be a whole number")
	}
	max := time.Now().Year() + 1
	if year < 1950 || year > max {
		return 0, fmt.Errorf("year must be between 1950 and %d", max)
	}
	return year, nil
}

// DailyRate must parse as a positive decimal. Both comma and dot are
// accepted as the decimal separator.
func DailyRate(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	rate, err := decimal.NewFromString(normalized)
	if err != nil {
		return decimal.Zero, fmt.Errorf("daily rate must be a valid number")
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("daily rate must be a positive number")
	}
	return rate, nil
}

// NationalID validates a CPF: 11 digits after stripping separators, not
// all identical, and both check digits must match the weighted mod-11
// checksum (remainder 10 maps to 0).
func NationalID(raw string) (string, error) {
	cpf := nonDigitRe.ReplaceAllString(raw, "")
	if len(cpf) != 11 {
		return "", fmt.Errorf("national id must contain 11 digits")
	}
	if strings.Count(cpf, string(cpf[0])) == 11 {
		return "", fmt.Errorf("invalid national id")
	}
	if digit(cpf, 9) != checkDigit(cpf, 9, 10) || digit(cpf, 10) != checkDigit(cpf, 10, 11) {
		return "", fmt.Errorf("invalid national id")
	}
	return cpf, nil
}

func digit(cpf string, pos int) int {
	return int(cpf[pos] - '0')
}

// checkDigit computes the verification digit over the first n digits
// with weights startWeight down to 2.
func checkDigit(cpf string, n, startWeight int) int {
	sum := 0
	for i := 0; i < n; i++ {
		sum += digit(cpf, i) * (startWeight - i)
	}
	rest := (sum * 10) % 11
	if rest == 10 {
		rest = 0
	}
	return rest
}

// Phone must contain 10 or 11 digits (area code plus number) after
// stripping separators. The normalized form is digits only.
func Phone(raw string) (string, error) {
	phone := nonDigitRe.ReplaceAllString(raw, "")
	if len(phone) < 10 || len(phone) > 11 {
		return "", fmt.Errorf("phone must contain 10 or 11 digits including area code")
	}
	return phone, nil
}

// Email requires local@domain.tld with at least one dot in the domain.
// The normalized form is trimmed and lowercased.
func Email(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if !emailRe.MatchString(email) {
		return "", fmt.Errorf("invalid email format")
	}
	return email, nil
}

// NonEmpty rejects values that are empty or whitespace only.
func NonEmpty(raw, fieldName string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", fmt.Errorf("field '%s' is required", fieldName)
	}
	return value, nil
}
