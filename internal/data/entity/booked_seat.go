package entity

import "github.com/google/uuid"

// BookedSeat is one row per seat held by a booking. The database
// enforces UNIQUE(movie_id, showtime, seat); that constraint, not the
// availability pre-check, is what makes double-booking impossible.
type BookedSeat struct {
	BaseSimple
	MovieID          uuid.UUID `db:"movie_id"`
	Showtime         string    `db:"showtime"`
	Seat             string    `db:"seat"`
	BookingReference string    `db:"booking_reference"`
}
