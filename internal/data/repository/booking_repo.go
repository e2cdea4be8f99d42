package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	// CreateWithSeats inserts the booking row and one booked_seats row per
	// seat inside a single transaction. Returns ErrSeatTaken when a
	// concurrent booking already holds one of the seats; nothing is
	// persisted in that case.
	CreateWithSeats(ctx context.Context, booking *entity.Booking) error

	// DeleteWithSeats removes the booking row and all its booked_seats
	// rows inside a single transaction.
	DeleteWithSeats(ctx context.Context, reference string) error

	FindDetailByReference(ctx context.Context, reference string) (*entity.BookingDetail, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) CreateWithSeats(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin booking transaction", zap.Error(err))
		return fmt.Errorf("begin booking transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	insertBooking := `
		INSERT INTO bookings (id, reference, user_id, movie_id, showtime, seats, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, insertBooking,
		booking.ID,
		booking.Reference,
		booking.UserID,
		booking.MovieID,
		booking.Showtime,
		joinList(booking.Seats),
		booking.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
		)
		return fmt.Errorf("insert booking %s: %w", booking.Reference, err)
	}

	insertSeat := `
		INSERT INTO booked_seats (id, movie_id, showtime, seat, booking_reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, seat := range booking.Seats {
		_, err = tx.Exec(ctx, insertSeat,
			uuid.New(),
			booking.MovieID,
			booking.Showtime,
			seat,
			booking.Reference,
			booking.CreatedAt,
		)
		if err != nil {
			// The uniqueness constraint is the backstop against a
			// concurrent booking that slipped past the availability
			// pre-check.
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				r.log.Warn("Seat uniqueness collision on commit",
					zap.String("reference", booking.Reference),
					zap.String("seat", seat),
				)
				return ErrSeatTaken
			}

			r.log.Error("Failed to insert booked seat",
				zap.Error(err),
				zap.String("reference", booking.Reference),
				zap.String("seat", seat),
			)
			return fmt.Errorf("insert booked seat %s: %w", seat, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSeatTaken
		}

		r.log.Error("Failed to commit booking",
			zap.Error(err),
			zap.String("reference", booking.Reference),
		)
		return fmt.Errorf("commit booking %s: %w", booking.Reference, err)
	}

	return nil
}

func (r *bookingRepository) DeleteWithSeats(ctx context.Context, reference string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin cancellation transaction", zap.Error(err))
		return fmt.Errorf("begin cancellation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM booked_seats WHERE booking_reference = $1`, reference); err != nil {
		r.log.Error("Failed to delete booked seats",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return fmt.Errorf("delete booked seats for %s: %w", reference, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM bookings WHERE reference = $1`, reference)
	if err != nil {
		r.log.Error("Failed to delete booking",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return fmt.Errorf("delete booking %s: %w", reference, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", reference)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit cancellation",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return fmt.Errorf("commit cancellation %s: %w", reference, err)
	}

	r.log.Info("Booking deleted", zap.String("reference", reference))
	return nil
}

const bookingDetailColumns = `
	b.id, b.reference, b.user_id, b.movie_id, b.showtime, b.seats, b.created_at,
	m.title, m.poster_url,
	u.first_name, u.last_name, u.email
`

func (r *bookingRepository) scanDetail(row pgx.Row) (*entity.BookingDetail, error) {
	var detail entity.BookingDetail
	var seats string

	err := row.Scan(
		&detail.ID,
		&detail.Reference,
		&detail.UserID,
		&detail.MovieID,
		&detail.Showtime,
		&seats,
		&detail.CreatedAt,
		&detail.MovieTitle,
		&detail.MoviePosterURL,
		&detail.UserFirstName,
		&detail.UserLastName,
		&detail.UserEmail,
	)
	if err != nil {
		return nil, err
	}

	detail.Seats = splitList(seats)
	return &detail, nil
}

func (r *bookingRepository) FindDetailByReference(ctx context.Context, reference string) (*entity.BookingDetail, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN users u ON b.user_id = u.id
		WHERE b.reference = $1
	`

	detail, err := r.scanDetail(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find booking by reference %s: %w", reference, err)
	}

	return detail, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	query := `
		SELECT ` + bookingDetailColumns + `
		FROM bookings b
		JOIN movies m ON b.movie_id = m.id
		JOIN users u ON b.user_id = u.id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var details []*entity.BookingDetail
	for rows.Next() {
		detail, err := r.scanDetail(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		details = append(details, detail)
	}

	return details, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}
