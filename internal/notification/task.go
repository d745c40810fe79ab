package notification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	errors "github.com/alx-travel/travelbook/internal"
	bookingmodel "github.com/alx-travel/travelbook/internal/core/datamodel/booking"
)

// BookingReader loads a booking with its listing and user attached.
type BookingReader interface {
	GetByID(id int64) (*bookingmodel.Booking, error)
}

// ConfirmationSender is the booking-confirmation task. It runs on the
// worker side of the queue; its failures never reach the payment flow
// that enqueued it.
type ConfirmationSender struct {
	bookings BookingReader
	mailer   Mailer
	logger   *slog.Logger
}

func NewConfirmationSender(bookings BookingReader, mailer Mailer, logger *slog.Logger) *ConfirmationSender {
	return &ConfirmationSender{
		bookings: bookings,
		mailer:   mailer,
		logger:   logger,
	}
}

// SendBookingConfirmation formats and sends the confirmation message
// for a booking. Not idempotent: a duplicate call sends a duplicate
// email.
func (s *ConfirmationSender) SendBookingConfirmation(ctx context.Context, bookingID int64) error {
	b, err := s.bookings.GetByID(bookingID)
	if err != nil {
		s.logger.Error("failed to load booking for confirmation email",
			"error", err,
			"booking_id", bookingID)
		return fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	recipient := recipientEmail(b)
	if recipient == "" {
		s.logger.Error("booking has no recipient email", "booking_id", bookingID)
		return errors.NewValidationError("booking has no recipient email", errors.ErrCodeMissingRecipient)
	}

	subject := fmt.Sprintf("Booking Confirmation - #%d", b.ID)
	body := formatConfirmation(b)

	if err := s.mailer.Send(recipient, subject, body); err != nil {
		s.logger.Error("failed to send booking confirmation email",
			"error", err,
			"booking_id", bookingID,
			"recipient", recipient)
		return err
	}

	s.logger.Info("booking confirmation email sent",
		"booking_id", bookingID,
		"recipient", recipient)
	return nil
}

func recipientEmail(b *bookingmodel.Booking) string {
	if b.User != nil && b.User.Email != "" {
		return b.User.Email
	}
	if b.GuestEmail != nil && *b.GuestEmail != "" {
		return *b.GuestEmail
	}
	return ""
}

func formatConfirmation(b *bookingmodel.Booking) string {
	guestName := "Guest"
	if b.User != nil && b.User.FirstName != "" {
		guestName = b.User.FirstName
	}

	propertyTitle := "your property"
	if b.Listing != nil {
		propertyTitle = b.Listing.Title
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello %s,\n\n", guestName)
	sb.WriteString("Your booking has been confirmed!\n\n")
	sb.WriteString("Booking Details:\n")
	fmt.Fprintf(&sb, "- Booking ID: %d\n", b.ID)
	fmt.Fprintf(&sb, "- Property: %s\n", propertyTitle)
	fmt.Fprintf(&sb, "- Check-in: %s\n", b.CheckIn.Format("2006-01-02"))
	fmt.Fprintf(&sb, "- Check-out: %s\n", b.CheckOut.Format("2006-01-02"))
	fmt.Fprintf(&sb, "- Total Guests: %d\n", b.Guests)
	fmt.Fprintf(&sb, "- Total Price: $%.2f\n\n", b.TotalPrice)
	sb.WriteString("Thank you for choosing our service!\n\n")
	sb.WriteString("Best regards,\nALX Travel Team")

	return sb.String()
}
