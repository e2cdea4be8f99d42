package entity

import (
	"github.com/google/uuid"
)

// Booking and its BookedSeat rows are created and deleted together as
// one transactional unit.
type Booking struct {
	BaseSimple
	Reference string    `db:"reference"`
	UserID    uuid.UUID `db:"user_id"`
	MovieID   uuid.UUID `db:"movie_id"`
	Showtime  string    `db:"showtime"`
	Seats     []string  `db:"seats"`
}

// BookingDetail joins a booking with its movie and owner for
// confirmations, listings, and cancellation checks.
type BookingDetail struct {
	Booking
	MovieTitle     string
	MoviePosterURL string
	UserFirstName  string
	UserLastName   string
	UserEmail      string
}

func (d *BookingDetail) UserFullName() string {
	return d.UserFirstName + " " + d.UserLastName
}
