package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r *chi.Mux, handler *adaptor.AuthHandler, repo *repository.Repository, logger *zap.Logger) {
	r.Route("/api", func(api chi.Router) {
		// Public
		api.Post("/register", handler.Signup)
		api.Post("/login", handler.Login)

		// Protected
		api.Group(func(protected chi.Router) {
			protected.Use(middleware.AuthSession(repo.Session, repo.User, logger))
			protected.Post("/logout", handler.Logout)
		})
	})
}
