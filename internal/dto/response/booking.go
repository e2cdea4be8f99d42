package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type BookingResponse struct {
	Reference  string    `json:"booking_id"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	PosterURL  string    `json:"poster_url,omitempty"`
	Showtime   string    `json:"showtime"`
	Seats      []string  `json:"seats"`
	BookedAt   time.Time `json:"booked_at"`

	// EmailSent false means the booking succeeded but the confirmation
	// mail could not be delivered.
	EmailSent bool `json:"email_sent"`
}

type CancellationResponse struct {
	Reference string `json:"booking_id"`
	EmailSent bool   `json:"email_sent"`
}

func BookingDetailToResponse(detail *entity.BookingDetail, emailSent bool) BookingResponse {
	return BookingResponse{
		Reference:  detail.Reference,
		MovieID:    detail.MovieID.String(),
		MovieTitle: detail.MovieTitle,
		PosterURL:  detail.MoviePosterURL,
		Showtime:   detail.Showtime,
		Seats:      detail.Seats,
		BookedAt:   detail.CreatedAt,
		EmailSent:  emailSent,
	}
}
