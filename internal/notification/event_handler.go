package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alx-travel/travelbook/internal/core/events"
)

// EventHandler bridges the event bus and the notification queue.
type EventHandler struct {
	dispatcher *Dispatcher
	logger     *slog.Logger
}

func NewEventHandler(dispatcher *Dispatcher, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

func (h *EventHandler) HandlePaymentCompleted(ctx context.Context, event events.Event) error {
	completed, ok := event.(*events.PaymentCompletedEvent)
	if !ok {
		h.logger.Error("invalid event type for payment completed handler", "event_type", event.EventType())
		return fmt.Errorf("expected PaymentCompletedEvent, got %T", event)
	}

	h.logger.Info("handling payment completed event",
		"booking_id", completed.BookingID,
		"payment_id", completed.PaymentID,
		"event_id", completed.EventID())

	if err := h.dispatcher.Enqueue(Job{BookingID: completed.BookingID}); err != nil {
		return fmt.Errorf("failed to enqueue confirmation for booking %d: %w", completed.BookingID, err)
	}

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypePaymentCompleted, h.HandlePaymentCompleted)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{events.EventTypePaymentCompleted})
}
