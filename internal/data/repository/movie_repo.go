package repository

import (
	"context"
	"fmt"
	"strings"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Upsert(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	Search(ctx context.Context, query string) ([]*entity.Movie, error)
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// joinList and splitList translate between []string and the
// comma-joined storage encoding.
func joinList(values []string) string {
	return strings.Join(values, ",")
}

func splitList(encoded string) []string {
	if encoded == "" {
		return nil
	}

	parts := strings.Split(encoded, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}

const movieColumns = `id, imdb_id, title, poster_url, release_year, description, genre, rating, showtimes, created_at, updated_at`

func (r *movieRepository) scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	var showtimes string

	err := row.Scan(
		&movie.ID,
		&movie.ImdbID,
		&movie.Title,
		&movie.PosterURL,
		&movie.ReleaseYear,
		&movie.Description,
		&movie.Genre,
		&movie.Rating,
		&showtimes,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	movie.Showtimes = splitList(showtimes)
	return &movie, nil
}

// Upsert inserts a movie or refreshes the metadata of an existing one,
// keyed on imdb_id. Used by the catalog seeder.
func (r *movieRepository) Upsert(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (id, imdb_id, title, poster_url, release_year, description, genre, rating, showtimes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (imdb_id) DO UPDATE
		SET title = EXCLUDED.title,
		    poster_url = EXCLUDED.poster_url,
		    release_year = EXCLUDED.release_year,
		    description = EXCLUDED.description,
		    genre = EXCLUDED.genre,
		    rating = EXCLUDED.rating,
		    updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.ImdbID,
		movie.Title,
		movie.PosterURL,
		movie.ReleaseYear,
		movie.Description,
		movie.Genre,
		movie.Rating,
		joinList(movie.Showtimes),
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("upsert movie %s: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	movie, err := r.scanMovie(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("find movie by ID %s: %w", id.String(), err)
	}

	return movie, nil
}

func (r *movieRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		ORDER BY title
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to find movies",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	return r.collectMovies(rows)
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var count int64
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return count, nil
}

// Search matches the query against title and genre, case-insensitive.
func (r *movieRepository) Search(ctx context.Context, query string) ([]*entity.Movie, error) {
	sql := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE title ILIKE $1 OR genre ILIKE $1
		ORDER BY title
	`

	rows, err := r.db.Query(ctx, sql, "%"+query+"%")
	if err != nil {
		r.log.Error("Failed to search movies",
			zap.Error(err),
			zap.String("query", query),
		)
		return nil, fmt.Errorf("search movies %q: %w", query, err)
	}
	defer rows.Close()

	return r.collectMovies(rows)
}

func (r *movieRepository) collectMovies(rows pgx.Rows) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for rows.Next() {
		movie, err := r.scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie row: %w", err)
		}
		movies = append(movies, movie)
	}

	return movies, nil
}
