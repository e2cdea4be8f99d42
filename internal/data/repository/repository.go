package repository

import (
	"movie-reservation/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Movie      MovieRepository
	Booking    BookingRepository
	BookedSeat BookedSeatRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Movie:      NewMovieRepository(db, log),
		Booking:    NewBookingRepository(db, log),
		BookedSeat: NewBookedSeatRepository(db, log),
	}
}
