package wire

import (
	"movie-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// Browsing is open to everyone, no session required.
func wireMovie(r *chi.Mux, handler *adaptor.MovieHandler) {
	r.Route("/api/movies", func(api chi.Router) {
		api.Get("/", handler.GetMovies)
		api.Get("/search", handler.SearchMovies)
		api.Get("/{id}", handler.GetMovieByID)
		api.Get("/{id}/seats", handler.GetBookedSeats)
	})
}
