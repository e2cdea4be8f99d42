// Command seed populates the movie catalog from the OMDb API. When the
// API yields nothing (bad key, offline) it falls back to a built-in
// sample catalog so the app always has something to show.
package main

import (
	"context"
	"log"
	"time"

	"movie-reservation/internal/catalog"
	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/database"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var searchTerms = []string{"batman", "avengers", "spider", "star wars", "matrix", "inception"}

// defaultShowtimes is the schedule every seeded movie gets.
var defaultShowtimes = []string{"10:00 AM", "1:00 PM", "4:00 PM", "7:00 PM", "10:00 PM"}

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	repo := repository.NewRepository(db, logger)
	client := catalog.NewOMDbClient(config.OMDb, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	seeded := seedFromOMDb(ctx, client, repo.Movie, logger)

	total, err := repo.Movie.CountAll(ctx)
	if err != nil {
		logger.Fatal("Failed to count movies", zap.Error(err))
	}

	if total == 0 {
		logger.Info("No movies fetched from OMDb, seeding sample catalog")
		seeded = seedSamples(ctx, repo.Movie, logger)
		total = int64(seeded)
	}

	logger.Info("Catalog seeding complete",
		zap.Int("seeded", seeded),
		zap.Int64("total", total),
	)
}

func seedFromOMDb(ctx context.Context, client *catalog.OMDbClient, movies repository.MovieRepository, logger *zap.Logger) int {
	seeded := 0

	for _, term := range searchTerms {
		results, err := client.Search(ctx, term)
		if err != nil {
			logger.Warn("OMDb search failed", zap.String("term", term), zap.Error(err))
			continue
		}

		// Top three matches per term keeps the catalog small and varied.
		if len(results) > 3 {
			results = results[:3]
		}

		for _, result := range results {
			detail, err := client.Detail(ctx, result.ImdbID)
			if err != nil {
				logger.Warn("OMDb detail fetch failed", zap.String("imdb_id", result.ImdbID), zap.Error(err))
				continue
			}

			movie := movieFromDetail(detail)
			if err := movies.Upsert(ctx, movie); err != nil {
				logger.Warn("Failed to store movie", zap.String("title", movie.Title), zap.Error(err))
				continue
			}

			logger.Info("Added movie", zap.String("title", movie.Title))
			seeded++
		}
	}

	return seeded
}

func movieFromDetail(detail *catalog.MovieDetail) *entity.Movie {
	imdbID := detail.ImdbID
	now := time.Now()

	return &entity.Movie{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		ImdbID:      &imdbID,
		Title:       detail.Title,
		PosterURL:   orDefault(detail.Poster, "/static/images/no-poster.png"),
		ReleaseYear: detail.Year,
		Description: orDefault(detail.Plot, "No description available."),
		Genre:       orDefault(detail.Genre, "Unknown"),
		Rating:      detail.ImdbRating,
		Showtimes:   defaultShowtimes,
	}
}

// orDefault replaces OMDb's "N/A" placeholder with a usable fallback.
func orDefault(value, fallback string) string {
	if value == "" || value == "N/A" {
		return fallback
	}
	return value
}

type sampleMovie struct {
	imdbID      string
	title       string
	posterURL   string
	releaseYear string
	description string
	genre       string
	rating      string
}

func seedSamples(ctx context.Context, movies repository.MovieRepository, logger *zap.Logger) int {
	samples := []sampleMovie{
		{"tt0468569", "The Dark Knight", "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg", "2008", "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.", "Action, Crime, Drama", "9.0"},
		{"tt0848228", "The Avengers", "https://m.media-amazon.com/images/M/MV5BNDYxNjQyMjAtNTdiOS00NGYwLWFmNTAtNThmYjU5ZGI2YTI1XkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg", "2012", "Earth's mightiest heroes must come together and learn to fight as a team if they are going to stop the mischievous Loki and his alien army from enslaving humanity.", "Action, Sci-Fi", "8.0"},
		{"tt0816692", "Interstellar", "https://m.media-amazon.com/images/M/MV5BZjdkOTU3MDktN2IxOS00OGEyLWFmMjktY2FiMmZkNWIyODZiXkEyXkFqcGdeQXVyMTMxODk2OTU@._V1_SX300.jpg", "2014", "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.", "Adventure, Drama, Sci-Fi", "8.7"},
		{"tt0133093", "The Matrix", "https://m.media-amazon.com/images/M/MV5BNzQzOTk3OTAtNDQ0Zi00ZTVkLWI0MTEtMDllZjNkYzNjNTc4L2ltYWdlXkEyXkFqcGdeQXVyNjU0OTQ0OTY@._V1_SX300.jpg", "1999", "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.", "Action, Sci-Fi", "8.7"},
		{"tt1375666", "Inception", "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg", "2010", "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.", "Action, Adventure, Sci-Fi", "8.8"},
		{"tt0076759", "Star Wars: Episode IV - A New Hope", "https://m.media-amazon.com/images/M/MV5BOTA5NjhiOTAtZWM0ZC00MWNhLThiMzEtZDFkOTk2OTU1ZDJkXkEyXkFqcGdeQXVyMTA4NDI1NTQx._V1_SX300.jpg", "1977", "Luke Skywalker joins forces with a Jedi Knight, a cocky pilot, a Wookiee and two droids to save the galaxy from the Empire's world-destroying battle station.", "Action, Adventure, Fantasy", "8.6"},
	}

	seeded := 0
	now := time.Now()

	for _, s := range samples {
		imdbID := s.imdbID
		movie := &entity.Movie{
			Base: entity.Base{
				ID:        uuid.New(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			ImdbID:      &imdbID,
			Title:       s.title,
			PosterURL:   s.posterURL,
			ReleaseYear: s.releaseYear,
			Description: s.description,
			Genre:       s.genre,
			Rating:      s.rating,
			Showtimes:   defaultShowtimes,
		}

		if err := movies.Upsert(ctx, movie); err != nil {
			logger.Warn("Failed to store sample movie", zap.String("title", s.title), zap.Error(err))
			continue
		}
		seeded++
	}

	return seeded
}
