package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateBookingReference creates a shareable booking reference.
// Format: BK + 8 uppercase hex chars, e.g. BK3F9A21C4.
func GenerateBookingReference() string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "BK" + strings.ToUpper(hex[:8])
}

// GenerateSessionToken creates an opaque session token.
func GenerateSessionToken() uuid.UUID {
	return uuid.New()
}
