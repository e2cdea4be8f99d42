package usecase

import (
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/cache"
	"movie-reservation/pkg/mailer"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

// Notifier is the capability the reservation flow uses for confirmation
// and cancellation email. Implementations report delivery as a bool and
// must never fail past their boundary.
type Notifier interface {
	SendBookingConfirmation(email, name string, details mailer.BookingDetails) bool
	SendBookingCancellation(email, name string, details mailer.BookingDetails) bool
}

type Service struct {
	Auth    AuthService
	Movie   MovieService
	Booking BookingService
}

func NewService(repo *repository.Repository, config *utils.Config, notifier Notifier, catalogCache *cache.Cache, log *zap.Logger) *Service {
	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Movie:   NewMovieService(repo, catalogCache, log),
		Booking: NewBookingService(repo, notifier, log),
	}
}
