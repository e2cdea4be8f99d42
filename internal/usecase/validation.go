package usecase

import (
	"fmt"
	"strings"

	"movie-reservation/pkg/utils"
)

// ValidShowtime reports whether the trimmed candidate exactly matches
// one of the movie's showtimes. No fuzzy matching: "10:00am" does not
// equal "10:00 AM".
func ValidShowtime(showtime string, showtimes []string) bool {
	candidate := strings.TrimSpace(showtime)
	for _, s := range showtimes {
		if candidate == strings.TrimSpace(s) {
			return true
		}
	}
	return false
}

// NormalizeSeats trims and uppercases seat codes, drops duplicates while
// preserving order, and rejects the first malformed code.
func NormalizeSeats(seats []string) ([]string, error) {
	normalized := make([]string, 0, len(seats))
	seen := make(map[string]bool, len(seats))

	for _, seat := range seats {
		code := strings.ToUpper(strings.TrimSpace(seat))
		if code == "" {
			continue
		}

		if !utils.ValidSeat(code) {
			return nil, fmt.Errorf("invalid seat format: %s. Seats must be A1-H10", code)
		}

		if seen[code] {
			continue
		}
		seen[code] = true
		normalized = append(normalized, code)
	}

	if len(normalized) == 0 {
		return nil, fmt.Errorf("please select at least one seat")
	}

	return normalized, nil
}
