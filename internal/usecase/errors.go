package usecase

import "errors"

// Sentinel outcomes the handlers translate into HTTP responses. Services
// wrap these with context via fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound covers unknown movies and unknown bookings. A
	// cancellation with a wrong email returns the exact same error as an
	// unknown booking reference so callers cannot probe which references
	// exist.
	ErrNotFound = errors.New("not found")

	// ErrSeatsTaken is the conflict outcome, whether caught by the
	// availability pre-check or by the uniqueness constraint at commit.
	ErrSeatsTaken = errors.New("seats already booked")

	// ErrEmailTaken rejects signup with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials keeps login failures uniform.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
