package notification_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	bookingmodel "github.com/alx-travel/travelbook/internal/core/datamodel/booking"
	usermodel "github.com/alx-travel/travelbook/internal/core/datamodel/user"
	"github.com/alx-travel/travelbook/internal/core/events"
	"github.com/alx-travel/travelbook/internal/notification"
)

// countingMailer is a fakeMailer safe for the worker goroutines.
type countingMailer struct {
	mu        sync.Mutex
	sent      []sentMail
	sendError error
}

func (m *countingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendError != nil {
		return m.sendError
	}
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

func (m *countingMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

var _ = Describe("Dispatcher", func() {
	var (
		dispatcher *notification.Dispatcher
		bookings   *mockBookingReader
		mailer     *countingMailer
		logger     *slog.Logger
	)

	BeforeEach(func() {
		bookings = &mockBookingReader{bookings: map[int64]*bookingmodel.Booking{
			42: {
				ID:         42,
				UserID:     1,
				ListingID:  1,
				CheckIn:    time.Now().AddDate(0, 0, 7),
				CheckOut:   time.Now().AddDate(0, 0, 10),
				Guests:     2,
				TotalPrice: 255.00,
				User:       &usermodel.User{ID: 1, Email: "guest@example.com", FirstName: "Abebe"},
			},
		}}
		mailer = &countingMailer{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		sender := notification.NewConfirmationSender(bookings, mailer, logger)
		dispatcher = notification.NewDispatcher(notification.Config{
			MaxWorkers:   2,
			JobQueueSize: 4,
		}, sender, logger)
	})

	AfterEach(func() {
		dispatcher.Shutdown()
	})

	Describe("Enqueue", func() {
		It("should hand the job to a worker which sends the email", func() {
			err := dispatcher.Enqueue(notification.Job{BookingID: 42})

			Expect(err).ToNot(HaveOccurred())
			Eventually(mailer.sentCount, time.Second, 10*time.Millisecond).Should(Equal(1))
		})

		It("should absorb task failures without surfacing them", func() {
			mailer.sendError = errors.New("smtp down")

			err := dispatcher.Enqueue(notification.Job{BookingID: 42})

			Expect(err).ToNot(HaveOccurred())
			Consistently(mailer.sentCount, 100*time.Millisecond, 10*time.Millisecond).Should(Equal(0))
		})
	})

	Describe("event bus integration", func() {
		It("should enqueue a confirmation when a payment completes", func() {
			bus := events.NewEventBus(logger)
			notification.NewEventHandler(dispatcher, logger).RegisterEventHandlers(bus)

			event := events.NewPaymentCompletedEvent(1, 42, 255.00, "txn_1", "ref_abc")
			Expect(bus.Publish(context.Background(), event)).To(Succeed())

			Eventually(mailer.sentCount, time.Second, 10*time.Millisecond).Should(Equal(1))
		})

		It("should ignore payment failed events", func() {
			bus := events.NewEventBus(logger)
			notification.NewEventHandler(dispatcher, logger).RegisterEventHandlers(bus)

			event := events.NewPaymentFailedEvent(1, 42, 255.00, "ref_abc", "failed")
			Expect(bus.Publish(context.Background(), event)).To(Succeed())

			Consistently(mailer.sentCount, 100*time.Millisecond, 10*time.Millisecond).Should(Equal(0))
		})
	})
})
