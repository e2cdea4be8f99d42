package utils

import (
	"strings"
	"testing"
)

func TestValidSeat(t *testing.T) {
	valid := []string{"A1", "A10", "H1", "H10", "a1", "h10", " B5 "}
	for _, seat := range valid {
		if !ValidSeat(seat) {
			t.Errorf("ValidSeat(%q) = false, want true", seat)
		}
	}

	invalid := []string{"A0", "A11", "I1", "1A", "AA1", "A", "", "A1 B2"}
	for _, seat := range invalid {
		if ValidSeat(seat) {
			t.Errorf("ValidSeat(%q) = true, want false", seat)
		}
	}
}

func TestGenerateBookingReference(t *testing.T) {
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		ref := GenerateBookingReference()

		if len(ref) != 10 || !strings.HasPrefix(ref, "BK") {
			t.Fatalf("reference %q does not match BK + 8 chars", ref)
		}
		if ref != strings.ToUpper(ref) {
			t.Fatalf("reference %q is not uppercase", ref)
		}
		if seen[ref] {
			t.Fatalf("reference %q generated twice", ref)
		}
		seen[ref] = true
	}
}
