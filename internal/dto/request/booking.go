package request

type CreateBookingRequest struct {
	MovieID  string   `json:"movie_id" validate:"required,uuid4"`
	Showtime string   `json:"showtime" validate:"required"`
	Seats    []string `json:"seats" validate:"required,min=1,dive,seatcode"`
}

type CancelBookingRequest struct {
	Reference string `json:"booking_id" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
}
