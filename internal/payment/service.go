package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alx-travel/travelbook/internal"
	bookingmodel "github.com/alx-travel/travelbook/internal/core/datamodel/booking"
	"github.com/alx-travel/travelbook/internal/core/datamodel/payment"
	gatewaytypes "github.com/alx-travel/travelbook/internal/core/datamodel/paymentgateway"
	"github.com/alx-travel/travelbook/internal/core/events"
)

// Repository interface for payment database operations
type Repository interface {
	Create(p *payment.Payment) error
	GetByBookingID(bookingID int64) (*payment.Payment, error)
	// UpdateStatusIfPending applies the terminal transition only when
	// the row is still pending and reports whether this caller won.
	UpdateStatusIfPending(id int64, status string, transactionID *string) (bool, error)
}

// BookingReader gives the payment flow read access to bookings with
// their user preloaded.
type BookingReader interface {
	GetByID(id int64) (*bookingmodel.Booking, error)
}

// GatewayAPI is the outbound contract against the payment gateway.
type GatewayAPI interface {
	InitializeTransaction(ctx context.Context, req *gatewaytypes.InitializeRequest) (*gatewaytypes.InitializeResponse, error)
	VerifyTransaction(ctx context.Context, reference string) (*gatewaytypes.VerifyResponse, error)
}

// EventPublisher is the one-way producer handle toward the
// notification worker.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Service orchestrates payment initiation and verification for
// bookings.
type Service struct {
	repo      Repository
	bookings  BookingReader
	gateway   GatewayAPI
	publisher EventPublisher
	currency  string
	returnURL string
	logger    *slog.Logger
}

func NewService(repo Repository, bookings BookingReader, gateway GatewayAPI, publisher EventPublisher, currency, returnURL string, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		bookings:  bookings,
		gateway:   gateway,
		publisher: publisher,
		currency:  currency,
		returnURL: returnURL,
		logger:    logger,
	}
}

// TxRef derives the deterministic transaction reference for a booking.
func TxRef(bookingID int64) string {
	return fmt.Sprintf("booking_%d", bookingID)
}

// Initiate registers a checkout with the gateway and creates the
// booking's payment record in pending status. The record is only
// created after the gateway accepted the transaction, so a failed
// initiation can simply be retried.
func (s *Service) Initiate(ctx context.Context, bookingID int64) (*InitiateResult, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		s.logger.Error("booking not found for payment initiation", "error", err, "booking_id", bookingID)
		return nil, internal.ErrBookingNotFound
	}

	if existing, _ := s.repo.GetByBookingID(bookingID); existing != nil {
		s.logger.Warn("payment already initiated for booking",
			"booking_id", bookingID,
			"payment_id", existing.ID,
			"status", existing.Status)
		return nil, internal.ErrPaymentInitiated
	}

	req := &gatewaytypes.InitializeRequest{
		Amount:    fmt.Sprintf("%.2f", booking.TotalPrice),
		Currency:  s.currency,
		Email:     payerEmail(booking),
		FirstName: payerFirstName(booking),
		LastName:  payerLastName(booking),
		TxRef:     TxRef(bookingID),
		ReturnURL: s.returnURL,
	}

	resp, err := s.gateway.InitializeTransaction(ctx, req)
	if err != nil {
		s.logger.Error("gateway initialization failed", "error", err, "booking_id", bookingID)
		return nil, internal.NewGatewayError("Failed to initiate payment", err)
	}

	reference := resp.Data.Reference
	record := &payment.Payment{
		BookingID:      bookingID,
		Amount:         booking.TotalPrice,
		Status:         payment.StatusPending,
		ChapaReference: &reference,
	}

	if err := s.repo.Create(record); err != nil {
		s.logger.Error("failed to create payment record", "error", err, "booking_id", bookingID)
		return nil, internal.NewInternalError("failed to create payment record", err)
	}

	s.logger.Info("payment initiated",
		"booking_id", bookingID,
		"payment_id", record.ID,
		"chapa_reference", reference,
		"amount", booking.TotalPrice)

	return &InitiateResult{
		Success:     true,
		CheckoutURL: resp.Data.CheckoutURL,
		Message:     "Payment initiated successfully",
	}, nil
}

// Verify asks the gateway for the transaction outcome and applies the
// terminal transition at most once. Only the caller that wins the
// pending→completed update enqueues the confirmation notification.
func (s *Service) Verify(ctx context.Context, bookingID int64) (*VerifyResult, error) {
	booking, err := s.bookings.GetByID(bookingID)
	if err != nil {
		s.logger.Error("booking not found for payment verification", "error", err, "booking_id", bookingID)
		return nil, internal.ErrBookingNotFound
	}

	record, err := s.repo.GetByBookingID(bookingID)
	if err != nil || record == nil {
		s.logger.Error("payment not found for booking", "error", err, "booking_id", bookingID)
		return nil, internal.ErrPaymentNotFound
	}

	if record.ChapaReference == nil || *record.ChapaReference == "" {
		s.logger.Info("payment has no gateway reference, nothing to verify", "booking_id", bookingID)
		return &VerifyResult{Status: payment.StatusPending, Pending: true}, nil
	}

	if record.IsTerminal() {
		s.logger.Info("payment already in terminal state",
			"booking_id", bookingID,
			"status", record.Status)
		return &VerifyResult{
			Success: record.Status == payment.StatusCompleted,
			Status:  record.Status,
		}, nil
	}

	resp, err := s.gateway.VerifyTransaction(ctx, *record.ChapaReference)
	if err != nil {
		s.logger.Error("gateway verification failed",
			"error", err,
			"booking_id", bookingID,
			"chapa_reference", *record.ChapaReference)
		return nil, internal.NewGatewayError("Payment verification failed", err)
	}

	if resp.Data.Status == gatewaytypes.TransactionStatusSuccess {
		return s.completePayment(ctx, booking, record, resp.Data.ID)
	}
	return s.failPayment(ctx, record, resp.Data.Status)
}

func (s *Service) completePayment(ctx context.Context, booking *bookingmodel.Booking, record *payment.Payment, transactionID string) (*VerifyResult, error) {
	updated, err := s.repo.UpdateStatusIfPending(record.ID, payment.StatusCompleted, &transactionID)
	if err != nil {
		s.logger.Error("failed to update payment status", "error", err, "payment_id", record.ID)
		return nil, internal.NewInternalError("failed to update payment status", err)
	}

	if !updated {
		// Lost the race against a concurrent verify; report what the
		// winner stored without enqueueing a second notification.
		current, err := s.repo.GetByBookingID(booking.ID)
		if err != nil || current == nil {
			return nil, internal.NewInternalError("failed to reload payment", err)
		}
		s.logger.Info("payment was already finalized by a concurrent verify",
			"booking_id", booking.ID,
			"status", current.Status)
		return &VerifyResult{
			Success: current.Status == payment.StatusCompleted,
			Status:  current.Status,
		}, nil
	}

	chapaReference := ""
	if record.ChapaReference != nil {
		chapaReference = *record.ChapaReference
	}
	event := events.NewPaymentCompletedEvent(record.ID, booking.ID, record.Amount, transactionID, chapaReference)
	if err := s.publisher.Publish(ctx, event); err != nil {
		// The payment itself is completed; a lost notification is a
		// log record, not a flow failure.
		s.logger.Error("failed to publish payment completed event",
			"error", err,
			"booking_id", booking.ID,
			"event_id", event.EventID())
	}

	s.logger.Info("payment completed",
		"booking_id", booking.ID,
		"payment_id", record.ID,
		"transaction_id", transactionID)

	return &VerifyResult{
		Success: true,
		Status:  payment.StatusCompleted,
		Message: "Payment completed! Booking confirmation email is being sent.",
	}, nil
}

func (s *Service) failPayment(ctx context.Context, record *payment.Payment, gatewayStatus string) (*VerifyResult, error) {
	updated, err := s.repo.UpdateStatusIfPending(record.ID, payment.StatusFailed, nil)
	if err != nil {
		s.logger.Error("failed to update payment status", "error", err, "payment_id", record.ID)
		return nil, internal.NewInternalError("failed to update payment status", err)
	}

	if updated {
		chapaReference := ""
		if record.ChapaReference != nil {
			chapaReference = *record.ChapaReference
		}
		event := events.NewPaymentFailedEvent(record.ID, record.BookingID, record.Amount, chapaReference, gatewayStatus)
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish payment failed event",
				"error", err,
				"booking_id", record.BookingID,
				"event_id", event.EventID())
		}
	}

	s.logger.Info("payment failed",
		"booking_id", record.BookingID,
		"payment_id", record.ID,
		"gateway_status", gatewayStatus)

	return &VerifyResult{Success: false, Status: payment.StatusFailed}, nil
}

// Status returns the stored payment state for a booking.
func (s *Service) Status(ctx context.Context, bookingID int64) (*StatusResult, error) {
	record, err := s.repo.GetByBookingID(bookingID)
	if err != nil || record == nil {
		s.logger.Error("payment not found for booking", "error", err, "booking_id", bookingID)
		return nil, internal.ErrPaymentNotFound
	}

	return &StatusResult{Status: record.Status, Amount: record.Amount}, nil
}

func payerEmail(b *bookingmodel.Booking) string {
	if b.User != nil && b.User.Email != "" {
		return b.User.Email
	}
	if b.GuestEmail != nil && *b.GuestEmail != "" {
		return *b.GuestEmail
	}
	return ""
}

func payerFirstName(b *bookingmodel.Booking) string {
	if b.User != nil && b.User.FirstName != "" {
		return b.User.FirstName
	}
	return "Guest"
}

func payerLastName(b *bookingmodel.Booking) string {
	if b.User != nil && b.User.LastName != "" {
		return b.User.LastName
	}
	return "User"
}
