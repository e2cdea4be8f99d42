package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/pkg/mailer"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// seatKey identifies one ledger entry: a seat held for a screening.
func seatKey(movieID uuid.UUID, showtime, seat string) string {
	return movieID.String() + "|" + showtime + "|" + seat
}

// fakeStore is an in-memory stand-in for the database. The seat ledger
// enforces the same uniqueness the booked_seats constraint does, and
// CreateWithSeats is all-or-nothing like the real transaction.
type fakeStore struct {
	users    map[uuid.UUID]*entity.User
	movies   map[uuid.UUID]*entity.Movie
	bookings map[string]*entity.Booking
	ledger   map[string]string // seatKey -> booking reference

	// precheckBlind makes FindTaken report nothing so tests can drive
	// the conflict through the insert path instead of the pre-check.
	precheckBlind bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[uuid.UUID]*entity.User),
		movies:   make(map[uuid.UUID]*entity.Movie),
		bookings: make(map[string]*entity.Booking),
		ledger:   make(map[string]string),
	}
}

type fakeUserRepo struct{ store *fakeStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.store.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return r.store.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.store.users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return nil, nil
}

type fakeMovieRepo struct{ store *fakeStore }

func (r *fakeMovieRepo) Upsert(_ context.Context, movie *entity.Movie) error {
	r.store.movies[movie.ID] = movie
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	return r.store.movies[id], nil
}

func (r *fakeMovieRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, movie := range r.store.movies {
		movies = append(movies, movie)
	}
	return movies, nil
}

func (r *fakeMovieRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.store.movies)), nil
}

func (r *fakeMovieRepo) Search(_ context.Context, query string) ([]*entity.Movie, error) {
	var movies []*entity.Movie
	for _, movie := range r.store.movies {
		if strings.Contains(strings.ToLower(movie.Title), strings.ToLower(query)) {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}

type fakeBookedSeatRepo struct{ store *fakeStore }

func (r *fakeBookedSeatRepo) FindByShowtime(_ context.Context, movieID uuid.UUID, showtime string) ([]string, error) {
	var seats []string
	prefix := movieID.String() + "|" + showtime + "|"
	for key := range r.store.ledger {
		if strings.HasPrefix(key, prefix) {
			seats = append(seats, strings.TrimPrefix(key, prefix))
		}
	}
	return seats, nil
}

func (r *fakeBookedSeatRepo) FindTaken(_ context.Context, movieID uuid.UUID, showtime string, seats []string) ([]string, error) {
	if r.store.precheckBlind {
		return nil, nil
	}

	var taken []string
	for _, seat := range seats {
		if _, held := r.store.ledger[seatKey(movieID, showtime, seat)]; held {
			taken = append(taken, seat)
		}
	}
	return taken, nil
}

type fakeBookingRepo struct{ store *fakeStore }

func (r *fakeBookingRepo) CreateWithSeats(_ context.Context, booking *entity.Booking) error {
	for _, seat := range booking.Seats {
		if _, held := r.store.ledger[seatKey(booking.MovieID, booking.Showtime, seat)]; held {
			return repository.ErrSeatTaken
		}
	}

	for _, seat := range booking.Seats {
		r.store.ledger[seatKey(booking.MovieID, booking.Showtime, seat)] = booking.Reference
	}
	r.store.bookings[booking.Reference] = booking
	return nil
}

func (r *fakeBookingRepo) DeleteWithSeats(_ context.Context, reference string) error {
	booking, found := r.store.bookings[reference]
	if !found {
		return fmt.Errorf("booking %s not found", reference)
	}

	for _, seat := range booking.Seats {
		delete(r.store.ledger, seatKey(booking.MovieID, booking.Showtime, seat))
	}
	delete(r.store.bookings, reference)
	return nil
}

func (r *fakeBookingRepo) FindDetailByReference(_ context.Context, reference string) (*entity.BookingDetail, error) {
	booking, found := r.store.bookings[reference]
	if !found {
		return nil, nil
	}
	return r.detail(booking), nil
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	var details []*entity.BookingDetail
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			details = append(details, r.detail(booking))
		}
	}
	return details, nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, booking := range r.store.bookings {
		if booking.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) detail(booking *entity.Booking) *entity.BookingDetail {
	detail := &entity.BookingDetail{Booking: *booking}
	if movie, found := r.store.movies[booking.MovieID]; found {
		detail.MovieTitle = movie.Title
		detail.MoviePosterURL = movie.PosterURL
	}
	if user, found := r.store.users[booking.UserID]; found {
		detail.UserFirstName = user.FirstName
		detail.UserLastName = user.LastName
		detail.UserEmail = user.Email
	}
	return detail
}

type fakeNotifier struct {
	confirmations int
	cancellations int
	deliver       bool
}

func (n *fakeNotifier) SendBookingConfirmation(email, name string, details mailer.BookingDetails) bool {
	n.confirmations++
	return n.deliver
}

func (n *fakeNotifier) SendBookingCancellation(email, name string, details mailer.BookingDetails) bool {
	n.cancellations++
	return n.deliver
}

type bookingFixture struct {
	store    *fakeStore
	service  BookingService
	notifier *fakeNotifier
	movie    *entity.Movie
	alice    *entity.User
	bob      *entity.User
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	store := newFakeStore()
	notifier := &fakeNotifier{deliver: true}

	repo := &repository.Repository{
		User:       &fakeUserRepo{store: store},
		Movie:      &fakeMovieRepo{store: store},
		Booking:    &fakeBookingRepo{store: store},
		BookedSeat: &fakeBookedSeatRepo{store: store},
	}

	movie := &entity.Movie{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Title:     "Inception",
		Showtimes: []string{"10:00 AM", "1:00 PM", "4:00 PM", "7:00 PM", "10:00 PM"},
	}
	store.movies[movie.ID] = movie

	alice := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		FirstName: "Alice",
		LastName:  "Nguyen",
		Email:     "alice@example.com",
	}
	bob := &entity.User{
		Base:      entity.Base{ID: uuid.New()},
		FirstName: "Bob",
		LastName:  "Mensah",
		Email:     "bob@example.com",
	}
	store.users[alice.ID] = alice
	store.users[bob.ID] = bob

	return &bookingFixture{
		store:    store,
		service:  NewBookingService(repo, notifier, zap.NewNop()),
		notifier: notifier,
		movie:    movie,
		alice:    alice,
		bob:      bob,
	}
}

func (f *bookingFixture) ctxFor(user *entity.User) context.Context {
	return utils.SetUserContext(context.Background(), user.ID, user.Email, user.FullName())
}

func (f *bookingFixture) book(t *testing.T, user *entity.User, showtime string, seats []string) string {
	t.Helper()

	resp, err := f.service.Book(f.ctxFor(user), user.ID, &request.CreateBookingRequest{
		MovieID:  f.movie.ID.String(),
		Showtime: showtime,
		Seats:    seats,
	})
	if err != nil {
		t.Fatalf("Book(%v) failed: %v", seats, err)
	}
	return resp.Reference
}

func TestBookDisjointSeats(t *testing.T) {
	f := newBookingFixture(t)

	refA := f.book(t, f.alice, "7:00 PM", []string{"A1", "A2"})
	refB := f.book(t, f.bob, "7:00 PM", []string{"B1", "B2"})

	if refA == refB {
		t.Fatalf("bookings share reference %s", refA)
	}
	if len(f.store.ledger) != 4 {
		t.Errorf("ledger holds %d seats, want 4", len(f.store.ledger))
	}
}

func TestBookSameSeatsDifferentShowtimes(t *testing.T) {
	f := newBookingFixture(t)

	f.book(t, f.alice, "7:00 PM", []string{"A1"})
	f.book(t, f.bob, "10:00 PM", []string{"A1"})

	if len(f.store.bookings) != 2 {
		t.Errorf("got %d bookings, want 2", len(f.store.bookings))
	}
}

func TestBookOverlappingSeatsRejected(t *testing.T) {
	f := newBookingFixture(t)

	f.book(t, f.alice, "7:00 PM", []string{"A1", "A2"})

	_, err := f.service.Book(f.ctxFor(f.bob), f.bob.ID, &request.CreateBookingRequest{
		MovieID:  f.movie.ID.String(),
		Showtime: "7:00 PM",
		Seats:    []string{"A2", "A3"},
	})
	if !errors.Is(err, ErrSeatsTaken) {
		t.Fatalf("overlapping booking error = %v, want ErrSeatsTaken", err)
	}

	// The rejected request must leave nothing behind: A3 stays free.
	if _, held := f.store.ledger[seatKey(f.movie.ID, "7:00 PM", "A3")]; held {
		t.Error("rejected booking left seat A3 in the ledger")
	}
	if len(f.store.bookings) != 1 {
		t.Errorf("got %d bookings, want 1", len(f.store.bookings))
	}
}

func TestBookConflictThroughConstraint(t *testing.T) {
	f := newBookingFixture(t)

	f.book(t, f.alice, "7:00 PM", []string{"C5"})

	// Blind the pre-check so the conflict is only caught by the
	// uniqueness check at insert time, as in a lost race.
	f.store.precheckBlind = true

	_, err := f.service.Book(f.ctxFor(f.bob), f.bob.ID, &request.CreateBookingRequest{
		MovieID:  f.movie.ID.String(),
		Showtime: "7:00 PM",
		Seats:    []string{"C5"},
	})
	if !errors.Is(err, ErrSeatsTaken) {
		t.Fatalf("constraint conflict error = %v, want ErrSeatsTaken", err)
	}
	if len(f.store.bookings) != 1 {
		t.Errorf("got %d bookings, want 1", len(f.store.bookings))
	}
}

func TestBookUnknownMovie(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Book(f.ctxFor(f.alice), f.alice.ID, &request.CreateBookingRequest{
		MovieID:  uuid.New().String(),
		Showtime: "7:00 PM",
		Seats:    []string{"A1"},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown movie error = %v, want ErrNotFound", err)
	}
}

func TestBookInvalidShowtime(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.service.Book(f.ctxFor(f.alice), f.alice.ID, &request.CreateBookingRequest{
		MovieID:  f.movie.ID.String(),
		Showtime: "2:00 PM",
		Seats:    []string{"A1"},
	})
	if err == nil || !strings.Contains(err.Error(), "invalid showtime") {
		t.Fatalf("invalid showtime error = %v", err)
	}
	if len(f.store.bookings) != 0 {
		t.Errorf("got %d bookings, want 0", len(f.store.bookings))
	}
}

func TestBookSucceedsWhenEmailFails(t *testing.T) {
	f := newBookingFixture(t)
	f.notifier.deliver = false

	resp, err := f.service.Book(f.ctxFor(f.alice), f.alice.ID, &request.CreateBookingRequest{
		MovieID:  f.movie.ID.String(),
		Showtime: "7:00 PM",
		Seats:    []string{"D4"},
	})
	if err != nil {
		t.Fatalf("Book failed: %v", err)
	}
	if resp.EmailSent {
		t.Error("EmailSent = true, want false")
	}
	if len(f.store.bookings) != 1 {
		t.Error("booking was not kept despite email failure")
	}
}

func TestCancelFreesOnlyOwnSeats(t *testing.T) {
	f := newBookingFixture(t)

	refA := f.book(t, f.alice, "7:00 PM", []string{"A1", "A2"})
	f.book(t, f.bob, "7:00 PM", []string{"B1"})

	_, err := f.service.Cancel(context.Background(), &request.CancelBookingRequest{
		Reference: refA,
		Email:     f.alice.Email,
	})
	if err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	if _, held := f.store.ledger[seatKey(f.movie.ID, "7:00 PM", "A1")]; held {
		t.Error("cancelled booking still holds seat A1")
	}
	if _, held := f.store.ledger[seatKey(f.movie.ID, "7:00 PM", "B1")]; !held {
		t.Error("cancellation released another booking's seat B1")
	}
	if f.notifier.cancellations != 1 {
		t.Errorf("cancellation emails = %d, want 1", f.notifier.cancellations)
	}
}

func TestCancelWrongEmailMatchesUnknownReference(t *testing.T) {
	f := newBookingFixture(t)

	ref := f.book(t, f.alice, "7:00 PM", []string{"A1"})

	_, wrongEmailErr := f.service.Cancel(context.Background(), &request.CancelBookingRequest{
		Reference: ref,
		Email:     f.bob.Email,
	})
	_, unknownRefErr := f.service.Cancel(context.Background(), &request.CancelBookingRequest{
		Reference: "BKDEADBEEF",
		Email:     f.alice.Email,
	})

	if !errors.Is(wrongEmailErr, ErrNotFound) {
		t.Fatalf("wrong email error = %v, want ErrNotFound", wrongEmailErr)
	}
	if wrongEmailErr.Error() != unknownRefErr.Error() {
		t.Errorf("wrong email %q and unknown reference %q must be indistinguishable",
			wrongEmailErr, unknownRefErr)
	}

	// The probe must not have released anything.
	if _, held := f.store.ledger[seatKey(f.movie.ID, "7:00 PM", "A1")]; !held {
		t.Error("failed cancellation released seat A1")
	}
}

func TestCancelEmailCaseInsensitive(t *testing.T) {
	f := newBookingFixture(t)

	ref := f.book(t, f.alice, "7:00 PM", []string{"A1"})

	_, err := f.service.Cancel(context.Background(), &request.CancelBookingRequest{
		Reference: strings.ToLower(ref),
		Email:     "ALICE@Example.COM",
	})
	if err != nil {
		t.Fatalf("Cancel with cased email failed: %v", err)
	}
}

func TestBookingLifecycle(t *testing.T) {
	f := newBookingFixture(t)
	showtime := "7:00 PM"

	// Alice takes A1 and A2 for the evening screening.
	refA := f.book(t, f.alice, showtime, []string{"A1", "A2"})
	if f.notifier.confirmations != 1 {
		t.Fatalf("confirmation emails = %d, want 1", f.notifier.confirmations)
	}

	// Bob's overlapping request is refused.
	_, err := f.service.Book(f.ctxFor(f.bob), f.bob.ID, &request.CreateBookingRequest{
		MovieID:  f.movie.ID.String(),
		Showtime: showtime,
		Seats:    []string{"A2", "A3"},
	})
	if !errors.Is(err, ErrSeatsTaken) {
		t.Fatalf("overlapping booking error = %v, want ErrSeatsTaken", err)
	}

	// Alice cancels, releasing her seats.
	if _, err := f.service.Cancel(context.Background(), &request.CancelBookingRequest{
		Reference: refA,
		Email:     f.alice.Email,
	}); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	// The same seats are now Bob's for the taking.
	refB := f.book(t, f.bob, showtime, []string{"A2", "A3"})

	confirmation, err := f.service.GetConfirmation(context.Background(), refB)
	if err != nil {
		t.Fatalf("GetConfirmation failed: %v", err)
	}
	if confirmation.MovieTitle != "Inception" {
		t.Errorf("confirmation movie = %q, want Inception", confirmation.MovieTitle)
	}

	// And Alice's booking is gone for good.
	if _, err := f.service.GetConfirmation(context.Background(), refA); !errors.Is(err, ErrNotFound) {
		t.Errorf("cancelled booking lookup error = %v, want ErrNotFound", err)
	}
}

func TestGetUserBookings(t *testing.T) {
	f := newBookingFixture(t)

	f.book(t, f.alice, "7:00 PM", []string{"A1"})
	f.book(t, f.alice, "10:00 PM", []string{"A1"})
	f.book(t, f.bob, "7:00 PM", []string{"B1"})

	page, err := f.service.GetUserBookings(context.Background(), f.alice.ID, &request.PaginatedRequest{Page: 1, PerPage: 10})
	if err != nil {
		t.Fatalf("GetUserBookings failed: %v", err)
	}
	if len(page.Items) != 2 {
		t.Errorf("got %d bookings, want 2", len(page.Items))
	}
	if page.Total != 2 {
		t.Errorf("total = %d, want 2", page.Total)
	}
}
