package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r *chi.Mux, handler *adaptor.BookingHandler, repo *repository.Repository, logger *zap.Logger) {
	r.Route("/api/bookings", func(api chi.Router) {
		// Public: confirmation lookup by reference and cancellation by
		// reference + email, matching the emailed instructions.
		api.Get("/{reference}", handler.GetConfirmation)
		api.Post("/cancel", handler.CancelBooking)

		// Protected
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.AuthSession(repo.Session, repo.User, logger))
			protected.Post("/", handler.CreateBooking)
		})
	})

	r.Route("/api/user", func(api chi.Router) {
		api.Use(middleware.AuthSession(repo.Session, repo.User, logger))
		api.Get("/bookings", handler.GetUserBookings)
	})
}
