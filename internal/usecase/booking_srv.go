package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/mailer"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Book validates the request and commits the booking together with
	// its seat rows as one atomic unit. A seat conflict, whether seen by
	// the pre-check or by the uniqueness constraint at commit time,
	// yields ErrSeatsTaken and leaves no state behind.
	Book(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)

	// Cancel deletes a booking and its seats given the reference and the
	// owner's email. A wrong email is indistinguishable from an unknown
	// reference.
	Cancel(ctx context.Context, req *request.CancelBookingRequest) (*response.CancellationResponse, error)

	GetConfirmation(ctx context.Context, reference string) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo     *repository.Repository
	notifier Notifier
	log      *zap.Logger
}

func NewBookingService(repo *repository.Repository, notifier Notifier, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Book(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("invalid movie ID format %s: %w", req.MovieID, err)
	}

	seats, err := NormalizeSeats(req.Seats)
	if err != nil {
		return nil, err
	}

	movie, err := s.repo.Movie.FindByID(ctx, movieID)
	if err != nil {
		s.log.Error("Failed to load movie for booking", zap.Error(err), zap.String("movie_id", req.MovieID))
		return nil, fmt.Errorf("load movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", req.MovieID, ErrNotFound)
	}

	showtime := strings.TrimSpace(req.Showtime)
	if !ValidShowtime(showtime, movie.Showtimes) {
		return nil, fmt.Errorf("invalid showtime selected: %s", showtime)
	}

	// Friendly pre-check. Not a guarantee: a concurrent booking can still
	// win the race between here and the insert below.
	taken, err := s.repo.BookedSeat.FindTaken(ctx, movieID, showtime, seats)
	if err != nil {
		s.log.Error("Failed to check seat availability", zap.Error(err))
		return nil, fmt.Errorf("check seat availability: %w", err)
	}
	if len(taken) > 0 {
		return nil, fmt.Errorf("seats %s: %w", strings.Join(taken, ", "), ErrSeatsTaken)
	}

	booking := &entity.Booking{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Reference: utils.GenerateBookingReference(),
		UserID:    userID,
		MovieID:   movieID,
		Showtime:  showtime,
		Seats:     seats,
	}

	// The uniqueness constraint on booked_seats is the real guard: a
	// collision rolls the whole unit back and surfaces the same conflict
	// outcome as the pre-check.
	if err := s.repo.Booking.CreateWithSeats(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, fmt.Errorf("seats %s: %w", strings.Join(seats, ", "), ErrSeatsTaken)
		}

		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.String("movie_id", req.MovieID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("reference", booking.Reference),
		zap.String("user_id", userID.String()),
		zap.String("movie", movie.Title),
		zap.String("showtime", showtime),
		zap.Strings("seats", seats),
	)

	emailSent := s.notifyConfirmation(ctx, booking, movie.Title)

	return &response.BookingResponse{
		Reference:  booking.Reference,
		MovieID:    movieID.String(),
		MovieTitle: movie.Title,
		PosterURL:  movie.PosterURL,
		Showtime:   showtime,
		Seats:      seats,
		BookedAt:   booking.CreatedAt,
		EmailSent:  emailSent,
	}, nil
}

func (s *bookingService) Cancel(ctx context.Context, req *request.CancelBookingRequest) (*response.CancellationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	reference := strings.ToUpper(strings.TrimSpace(req.Reference))

	detail, err := s.repo.Booking.FindDetailByReference(ctx, reference)
	if err != nil {
		s.log.Error("Failed to load booking for cancellation",
			zap.Error(err), zap.String("reference", reference))
		return nil, fmt.Errorf("load booking: %w", err)
	}

	// Unknown reference and email mismatch must be the same outcome, so
	// booking references cannot be probed.
	if detail == nil || !strings.EqualFold(detail.UserEmail, strings.TrimSpace(req.Email)) {
		return nil, fmt.Errorf("booking: %w", ErrNotFound)
	}

	if err := s.repo.Booking.DeleteWithSeats(ctx, reference); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err), zap.String("reference", reference))
		return nil, fmt.Errorf("cancel booking %s: %w", reference, err)
	}

	s.log.Info("Booking cancelled",
		zap.String("reference", reference),
		zap.String("user_id", detail.UserID.String()),
	)

	emailSent := s.notifier.SendBookingCancellation(detail.UserEmail, detail.UserFullName(), mailer.BookingDetails{
		Reference:  detail.Reference,
		MovieTitle: detail.MovieTitle,
		Showtime:   detail.Showtime,
		Seats:      detail.Seats,
	})
	if !emailSent {
		s.log.Warn("Cancellation email not delivered", zap.String("reference", reference))
	}

	return &response.CancellationResponse{
		Reference: reference,
		EmailSent: emailSent,
	}, nil
}

func (s *bookingService) GetConfirmation(ctx context.Context, reference string) (*response.BookingResponse, error) {
	reference = strings.ToUpper(strings.TrimSpace(reference))

	detail, err := s.repo.Booking.FindDetailByReference(ctx, reference)
	if err != nil {
		s.log.Error("Failed to load booking confirmation",
			zap.Error(err), zap.String("reference", reference))
		return nil, fmt.Errorf("load booking: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("booking: %w", ErrNotFound)
	}

	resp := response.BookingDetailToResponse(detail, true)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	bookingResponses := make([]response.BookingResponse, len(bookings))
	for i, detail := range bookings {
		bookingResponses[i] = response.BookingDetailToResponse(detail, true)
	}

	s.log.Info("User bookings retrieved",
		zap.String("user_id", userID.String()),
		zap.Int("count", len(bookings)),
		zap.Int64("total", total),
	)

	return response.NewPaginatedResponse(bookingResponses, req.Page, req.PerPage, total), nil
}

func (s *bookingService) notifyConfirmation(ctx context.Context, booking *entity.Booking, movieTitle string) bool {
	email, okEmail := utils.GetUserEmailFromContext(ctx)
	name, okName := utils.GetUserNameFromContext(ctx)

	if !okEmail || !okName {
		// Fall back to the owner record when the context was not
		// populated by the auth middleware (e.g. internal callers).
		user, err := s.repo.User.FindByID(ctx, booking.UserID)
		if err != nil || user == nil {
			s.log.Warn("No recipient for confirmation email",
				zap.String("reference", booking.Reference))
			return false
		}
		email = user.Email
		name = user.FullName()
	}

	sent := s.notifier.SendBookingConfirmation(email, name, mailer.BookingDetails{
		Reference:  booking.Reference,
		MovieTitle: movieTitle,
		Showtime:   booking.Showtime,
		Seats:      booking.Seats,
		BookedAt:   booking.CreatedAt,
	})
	if !sent {
		s.log.Warn("Confirmation email not delivered",
			zap.String("reference", booking.Reference))
	}

	return sent
}
