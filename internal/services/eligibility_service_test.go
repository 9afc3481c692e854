package services

import (
	"errors"
	"testing"
)

func TestNormalizePlate(t *testing.T) {
	cases := map[string]string{
		"kt 1234 abc":   "KT 1234 ABC",
		"  B 1 A  ":     "B 1 A",
		"KT 1234 ABC":   "KT 1234 ABC",
		"   ":           "",
	}
	for in, want := range cases {
		if got := NormalizePlate(in); got != want {
			t.Errorf("NormalizePlate(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidatePlate(t *testing.T) {
	valid := []string{
		"KT 1234 ABC",
		"kt 1234 abc", // normalized before matching
		"B 1 A",
		" B 9999 XYZ ",
	}
	for _, in := range valid {
		if _, err := ValidatePlate(in); err != nil {
			t.Errorf("ValidatePlate(%q) unexpected error: %v", in, err)
		}
	}

	if _, err := ValidatePlate(""); !errors.Is(err, ErrPlateRequired) {
		t.Errorf("ValidatePlate(\"\") = %v, want ErrPlateRequired", err)
	}
	if _, err := ValidatePlate("   "); !errors.Is(err, ErrPlateRequired) {
		t.Errorf("ValidatePlate(whitespace) = %v, want ErrPlateRequired", err)
	}

	malformed := []string{
		"KT1234ABC",     // no separators
		"KTT 1234 ABC",  // three-letter region code
		"KT 12345 ABC",  // five digits
		"KT 1234 ABCD",  // four-letter suffix
		"KT 1234",       // missing suffix
		"1234 KT ABC",   // digits first
		"KT  1234 ABC",  // double space
	}
	for _, in := range malformed {
		if _, err := ValidatePlate(in); !errors.Is(err, ErrPlateFormat) {
			t.Errorf("ValidatePlate(%q) = %v, want ErrPlateFormat", in, err)
		}
	}
}

func TestValidatePlateReturnsNormalized(t *testing.T) {
	got, err := ValidatePlate("  kt 1234 abc ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "KT 1234 ABC" {
		t.Errorf("normalized plate = %q, want %q", got, "KT 1234 ABC")
	}
}
