// Package repository holds the pgx-backed data access layer. Sentinel
// errors defined here let services distinguish outcomes without
// inspecting driver errors themselves.
package repository

import "errors"

// ErrSeatTaken is returned when inserting booked seats collides with the
// UNIQUE(movie_id, showtime, seat) constraint. The colliding transaction
// is rolled back in full before this is returned.
var ErrSeatTaken = errors.New("seat already taken")
