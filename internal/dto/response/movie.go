package response

import (
	"movie-reservation/internal/data/entity"
)

type MovieResponse struct {
	ID          string   `json:"id"`
	ImdbID      string   `json:"imdb_id,omitempty"`
	Title       string   `json:"title"`
	PosterURL   string   `json:"poster_url"`
	ReleaseYear string   `json:"release_year"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Rating      string   `json:"rating"`
	Showtimes   []string `json:"showtimes"`
}

type SeatAvailabilityResponse struct {
	MovieID     string   `json:"movie_id"`
	Showtime    string   `json:"showtime"`
	BookedSeats []string `json:"booked_seats"`
}

func MovieToResponse(movie *entity.Movie) MovieResponse {
	resp := MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		PosterURL:   movie.PosterURL,
		ReleaseYear: movie.ReleaseYear,
		Description: movie.Description,
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		Showtimes:   movie.Showtimes,
	}

	if movie.ImdbID != nil {
		resp.ImdbID = *movie.ImdbID
	}

	return resp
}
