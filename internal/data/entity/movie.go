package entity

// Movie is a catalog record. Showtimes is an ordered list of literal
// time strings such as "10:00 AM"; the comma-joined form only exists
// at the storage boundary.
type Movie struct {
	Base
	ImdbID      *string  `db:"imdb_id"`
	Title       string   `db:"title"`
	PosterURL   string   `db:"poster_url"`
	ReleaseYear string   `db:"release_year"`
	Description string   `db:"description"`
	Genre       string   `db:"genre"`
	Rating      string   `db:"rating"`
	Showtimes   []string `db:"showtimes"`
}
