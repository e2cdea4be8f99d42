package mailer

import (
	"fmt"
	"strings"
	"time"

	"movie-reservation/pkg/utils"

	mail "github.com/go-mail/mail/v2"
	"go.uber.org/zap"
)

// BookingDetails carries everything the templates need.
type BookingDetails struct {
	Reference  string
	MovieTitle string
	Showtime   string
	Seats      []string
	BookedAt   time.Time
}

// Mailer sends booking notifications over SMTP. Send methods report
// delivery as a bool and never propagate transport failures: an
// undelivered mail must not undo a committed booking.
type Mailer struct {
	dialer  *mail.Dialer
	from    string
	enabled bool
	log     *zap.Logger
}

func New(config utils.EmailConfig, log *zap.Logger) *Mailer {
	m := &Mailer{
		from: config.From,
		log:  log.With(zap.String("component", "mailer")),
	}

	// Without credentials we run with notifications disabled instead
	// of failing bookings.
	if config.Host == "" || config.User == "" {
		m.log.Warn("SMTP not configured, notifications disabled")
		return m
	}

	m.dialer = mail.NewDialer(config.Host, config.Port, config.User, config.Password)
	m.dialer.Timeout = 10 * time.Second
	m.enabled = true
	return m
}

func (m *Mailer) Enabled() bool {
	return m.enabled
}

// SendBookingConfirmation returns true only when the mail was handed
// to the SMTP server.
func (m *Mailer) SendBookingConfirmation(email, name string, details BookingDetails) bool {
	subject := fmt.Sprintf("Booking Confirmed - %s", details.MovieTitle)
	body := fmt.Sprintf(`Dear %s,

Your booking has been confirmed!

Booking Details:
- Booking ID: %s
- Movie: %s
- Showtime: %s
- Seats: %s
- Booking Date: %s

Please arrive at least 15 minutes before the showtime.

Thank you for choosing Movie Reservation System!

Best regards,
Movie Reservation Team
`, name, details.Reference, details.MovieTitle, details.Showtime,
		strings.Join(details.Seats, ", "), details.BookedAt.Format("2006-01-02 15:04:05"))

	return m.send(email, subject, body)
}

func (m *Mailer) SendBookingCancellation(email, name string, details BookingDetails) bool {
	subject := fmt.Sprintf("Booking Cancelled - %s", details.MovieTitle)
	body := fmt.Sprintf(`Dear %s,

Your booking has been successfully cancelled.

Booking Details:
- Booking ID: %s
- Movie: %s
- Showtime: %s
- Seats: %s

If you did not request this cancellation, please contact us immediately.

Thank you for using Movie Reservation System!

Best regards,
Movie Reservation Team
`, name, details.Reference, details.MovieTitle, details.Showtime,
		strings.Join(details.Seats, ", "))

	return m.send(email, subject, body)
}

func (m *Mailer) send(to, subject, body string) (sent bool) {
	if !m.enabled {
		m.log.Info("Email skipped, notifications disabled", zap.String("to", to))
		return false
	}

	// The transport must never take the caller down with it.
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("Mailer panic recovered", zap.Any("error", r))
			sent = false
		}
	}()

	msg := mail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.log.Warn("Failed to send email",
			zap.Error(err),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return false
	}

	return true
}
