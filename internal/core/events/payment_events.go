package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePaymentCompleted = "payment.completed"
	EventTypePaymentFailed    = "payment.failed"
)

type PaymentCompletedEvent struct {
	BaseEvent
	PaymentID      int64   `json:"payment_id"`
	BookingID      int64   `json:"booking_id"`
	Amount         float64 `json:"amount"`
	TransactionID  string  `json:"transaction_id"`
	ChapaReference string  `json:"chapa_reference"`
}

func NewPaymentCompletedEvent(paymentID, bookingID int64, amount float64, transactionID, chapaReference string) *PaymentCompletedEvent {
	return &PaymentCompletedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentCompleted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":      paymentID,
				"booking_id":      bookingID,
				"amount":          amount,
				"transaction_id":  transactionID,
				"chapa_reference": chapaReference,
			},
		},
		PaymentID:      paymentID,
		BookingID:      bookingID,
		Amount:         amount,
		TransactionID:  transactionID,
		ChapaReference: chapaReference,
	}
}

type PaymentFailedEvent struct {
	BaseEvent
	PaymentID      int64   `json:"payment_id"`
	BookingID      int64   `json:"booking_id"`
	Amount         float64 `json:"amount"`
	ChapaReference string  `json:"chapa_reference"`
	GatewayStatus  string  `json:"gateway_status"`
}

func NewPaymentFailedEvent(paymentID, bookingID int64, amount float64, chapaReference, gatewayStatus string) *PaymentFailedEvent {
	return &PaymentFailedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePaymentFailed,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"payment_id":      paymentID,
				"booking_id":      bookingID,
				"amount":          amount,
				"chapa_reference": chapaReference,
				"gateway_status":  gatewayStatus,
			},
		},
		PaymentID:      paymentID,
		BookingID:      bookingID,
		Amount:         amount,
		ChapaReference: chapaReference,
		GatewayStatus:  gatewayStatus,
	}
}
