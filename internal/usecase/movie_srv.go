package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieService interface {
	GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error)
	GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error)
	GetBookedSeats(ctx context.Context, movieID, showtime string) (*response.SeatAvailabilityResponse, error)
}

type movieService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewMovieService(repo *repository.Repository, catalogCache *cache.Cache, log *zap.Logger) MovieService {
	return &movieService{
		repo:  repo,
		cache: catalogCache,
		log:   log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) GetMovies(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	cacheKey := fmt.Sprintf("movies:page:%d:%d", req.Page, req.PerPage)

	var cached response.PaginatedResponse[response.MovieResponse]
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	movies, err := s.repo.Movie.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get movies",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count movies", zap.Error(err))
		return nil, fmt.Errorf("count movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	resp := response.NewPaginatedResponse(movieResponses, req.Page, req.PerPage, total)
	s.cache.Set(ctx, cacheKey, resp)

	s.log.Info("Movies retrieved",
		zap.Int("count", len(movies)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
	)

	return resp, nil
}

func (s *movieService) SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error) {
	query = strings.TrimSpace(query)

	movies, err := s.repo.Movie.Search(ctx, query)
	if err != nil {
		s.log.Error("Failed to search movies", zap.Error(err), zap.String("query", query))
		return nil, fmt.Errorf("search movies: %w", err)
	}

	movieResponses := make([]response.MovieResponse, len(movies))
	for i, movie := range movies {
		movieResponses[i] = response.MovieToResponse(movie)
	}

	s.log.Info("Movies searched",
		zap.String("query", query),
		zap.Int("count", len(movies)),
	)

	return movieResponses, nil
}

func (s *movieService) GetMovieByID(ctx context.Context, movieID string) (*response.MovieResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	cacheKey := "movie:" + movieID

	var cached response.MovieResponse
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie by ID", zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie by ID: %w", err)
	}

	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	resp := response.MovieToResponse(movie)
	s.cache.Set(ctx, cacheKey, resp)

	return &resp, nil
}

func (s *movieService) GetBookedSeats(ctx context.Context, movieID, showtime string) (*response.SeatAvailabilityResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", movieID, err)
	}

	movie, err := s.repo.Movie.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to get movie for seat availability",
			zap.Error(err), zap.String("movie_id", movieID))
		return nil, fmt.Errorf("get movie for seat availability: %w", err)
	}

	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}

	seats, err := s.repo.BookedSeat.FindByShowtime(ctx, id, strings.TrimSpace(showtime))
	if err != nil {
		s.log.Error("Failed to get booked seats",
			zap.Error(err),
			zap.String("movie_id", movieID),
			zap.String("showtime", showtime),
		)
		return nil, fmt.Errorf("get booked seats: %w", err)
	}

	if seats == nil {
		seats = []string{}
	}

	return &response.SeatAvailabilityResponse{
		MovieID:     movieID,
		Showtime:    strings.TrimSpace(showtime),
		BookedSeats: seats,
	}, nil
}
