package repository

import (
	"context"
	"fmt"

	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookedSeatRepository interface {
	// FindByShowtime returns every booked seat code for a movie+showtime.
	FindByShowtime(ctx context.Context, movieID uuid.UUID, showtime string) ([]string, error)

	// FindTaken returns the subset of the requested seats that are
	// already booked for the movie+showtime. This is the friendly
	// pre-check; the uniqueness constraint remains the backstop.
	FindTaken(ctx context.Context, movieID uuid.UUID, showtime string, seats []string) ([]string, error)
}

type bookedSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookedSeatRepository(db database.PgxIface, log *zap.Logger) BookedSeatRepository {
	return &bookedSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "booked_seat")),
	}
}

func (r *bookedSeatRepository) FindByShowtime(ctx context.Context, movieID uuid.UUID, showtime string) ([]string, error) {
	query := `
		SELECT seat
		FROM booked_seats
		WHERE movie_id = $1 AND showtime = $2
		ORDER BY seat
	`

	rows, err := r.db.Query(ctx, query, movieID, showtime)
	if err != nil {
		r.log.Error("Failed to find booked seats",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("showtime", showtime),
		)
		return nil, fmt.Errorf("find booked seats: %w", err)
	}
	defer rows.Close()

	var seats []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		seats = append(seats, seat)
	}

	return seats, nil
}

func (r *bookedSeatRepository) FindTaken(ctx context.Context, movieID uuid.UUID, showtime string, seats []string) ([]string, error) {
	if len(seats) == 0 {
		return nil, nil
	}

	query := `
		SELECT seat
		FROM booked_seats
		WHERE movie_id = $1 AND showtime = $2 AND seat = ANY($3)
	`

	rows, err := r.db.Query(ctx, query, movieID, showtime, seats)
	if err != nil {
		r.log.Error("Failed to check seat availability",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
			zap.String("showtime", showtime),
		)
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	defer rows.Close()

	var taken []string
	for rows.Next() {
		var seat string
		if err := rows.Scan(&seat); err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("scan seat row: %w", err)
		}
		taken = append(taken, seat)
	}

	return taken, nil
}
