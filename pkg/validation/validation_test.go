package validation

import (
	"strings"
	"testing"
)

func TestPlate(t *testing.T) {
	valid := []string{"ABC-1234", "ABC1D23", " abc-1234 ", "xyz9k87"}
	for _, in := range valid {
		if _, err := Plate(in); err != nil {
			t.Errorf("Plate(%q): unexpected error %v", in, err)
		}
	}

	invalid := []string{"", "ABC1234", "AB-1234", "ABCD-123", "ABC-12345", "ABC1D2", "1BC-1234", "ABC-12A4"}
	for _, in := range invalid {
		if _, err := Plate(in); err == nil {
			t.Errorf("Plate(%q): expected error", in)
		}
	}

	got, err := Plate("abc1d23")
	if err != nil {
		t.Fatalf("Plate: %v", err)
	}
	if got != "ABC1D23" {
		t.Errorf("Plate normalization: got %q, want ABC1D23", got)
	}
}

func TestYear(t *testing.T) {
	if _, err := Year("1950"); err != nil {
		t.Errorf("Year(1950): %v", err)
	}
	if _, err := Year("2020"); err != nil {
		t.Errorf("Year(2020): %v", err)
	}
	for _, in := range []string{"1949", "1899", "3000", "abc", "", "20.5"} {
		if _, err := Year(in); err == nil {
			t.Errorf("Year(%q): expected error", in)
		}
	}
}

func TestDailyRate(t *testing.T) {
	got, err := DailyRate("150,50")
	if err != nil {
		t.Fatalf("DailyRate: %v", err)
	}
	if got.String() != "150.5" {
		t.Errorf("DailyRate comma separator: got %s", got)
	}

	got, err = DailyRate("99.90")
	if err != nil {
		t.Fatalf("DailyRate: %v", err)
	}
	if got.String() != "99.9" {
		t.Errorf("DailyRate dot separator: got %s", got)
	}

	for _, in := range []string{"0", "-10", "abc", ""} {
		if _, err := DailyRate(in); err == nil {
			t.Errorf("DailyRate(%q): expected error", in)
		}
	}
}

func TestNationalID(t *testing.T) {
	got, err := NationalID("529.982.247-25")
	if err != nil {
		t.Fatalf("NationalID: %v", err)
	}
	if got != "52998224725" {
		t.Errorf("NationalID normalization: got %q", got)
	}

	if _, err := NationalID("11122233396"); err != nil {
		t.Errorf("NationalID(11122233396): %v", err)
	}

	invalid := []string{
		"",
		"1234567890",   // too short
		"123456789012", // too long
		"12345678901",  // second check digit wrong
		"52998224726",  // corrupted check digit
		"529982247",    // stripped too short
		"aaaaaaaaaaa",  // no digits
	}
	for _, in := range invalid {
		if _, err := NationalID(in); err == nil {
			t.Errorf("NationalID(%q): expected error", in)
		}
	}
}

func TestNationalIDAllIdenticalDigits(t *testing.T) {
	// Repeated-digit CPFs satisfy the checksum arithmetic but are not
	// issued. All of them must be rejected.
	for d := '0'; d <= '9'; d++ {
		in := strings.Repeat(string(d), 11)
		if _, err := NationalID(in); err == nil {
			t.Errorf("NationalID(%s): expected error", in)
		}
	}
}

func TestPhone(t *testing.T) {
	got, err := Phone("(11) 91234-5678")
	if err != nil {
		t.Fatalf("Phone: %v", err)
	}
	if got != "11912345678" {
		t.Errorf("Phone normalization: got %q", got)
	}
	if _, err := Phone("1132654987"); err != nil {
		t.Errorf("Phone 10 digits: %v", err)
	}
	for _, in := range []string{"", "123456789", "123456789012"} {
		if _, err := Phone(in); err == nil {
			t.Errorf("Phone(%q): expected error", in)
		}
	}
}

func TestEmail(t *testing.T) {
	got, err := Email(" John.Doe@Example.COM ")
	if err != nil {
		t.Fatalf("Email: %v", err)
	}
	if got != "john.doe@example.com" {
		t.Errorf("Email normalization: got %q", got)
	}
	for _, in := range []string{"", "no-at.example.com", "a@b", "a@b.", "@example.com", "user@domain"} {
		if _, err := Email(in); err == nil {
			t.Errorf("Email(%q): expected error", in)
		}
	}
}

func TestNonEmpty(t *testing.T) {
	got, err := NonEmpty("  Fiat  ", "Make")
	if err != nil {
		t.Fatalf("NonEmpty: %v", err)
	}
	if got != "Fiat" {
		t.Errorf("NonEmpty trim: got %q", got)
	}
	if _, err := NonEmpty("   ", "Make"); err == nil {
		t.Error("NonEmpty(whitespace): expected error")
	}
}
