package payment_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/datamodel/payment"
	paymentPkg "github.com/alx-travel/travelbook/internal/payment"
)

type mockPaymentService struct {
	initiateResult *paymentPkg.InitiateResult
	initiateError  error
	verifyResult   *paymentPkg.VerifyResult
	verifyError    error
	statusResult   *paymentPkg.StatusResult
	statusError    error
}

func (m *mockPaymentService) Initiate(_ context.Context, _ int64) (*paymentPkg.InitiateResult, error) {
	if m.initiateError != nil {
		return nil, m.initiateError
	}
	return m.initiateResult, nil
}

func (m *mockPaymentService) Verify(_ context.Context, _ int64) (*paymentPkg.VerifyResult, error) {
	if m.verifyError != nil {
		return nil, m.verifyError
	}
	return m.verifyResult, nil
}

func (m *mockPaymentService) Status(_ context.Context, _ int64) (*paymentPkg.StatusResult, error) {
	if m.statusError != nil {
		return nil, m.statusError
	}
	return m.statusResult, nil
}

var _ = Describe("PaymentHandler", func() {
	var (
		service *mockPaymentService
		router  *chi.Mux
	)

	BeforeEach(func() {
		service = &mockPaymentService{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler := paymentPkg.NewHandler(service, logger)

		router = chi.NewRouter()
		router.Route("/payments/{bookingID}", func(r chi.Router) {
			r.Post("/initiate", handler.Initiate)
			r.Get("/verify", handler.Verify)
			r.Post("/verify", handler.Verify)
			r.Get("/status", handler.Status)
		})
	})

	Describe("POST /payments/{bookingID}/initiate", func() {
		Context("when initiation succeeds", func() {
			It("should return the checkout URL", func() {
				service.initiateResult = &paymentPkg.InitiateResult{
					Success:     true,
					CheckoutURL: "https://pay/abc",
					Message:     "Payment initiated successfully",
				}

				req := httptest.NewRequest(http.MethodPost, "/payments/42/initiate", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))

				var body paymentPkg.InitiateResult
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body.Success).To(BeTrue())
				Expect(body.CheckoutURL).To(Equal("https://pay/abc"))
			})
		})

		Context("when the booking does not exist", func() {
			It("should return 404", func() {
				service.initiateError = internal.ErrBookingNotFound

				req := httptest.NewRequest(http.MethodPost, "/payments/42/initiate", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusNotFound))
			})
		})

		Context("when a payment was already initiated", func() {
			It("should return 409", func() {
				service.initiateError = internal.ErrPaymentInitiated

				req := httptest.NewRequest(http.MethodPost, "/payments/42/initiate", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusConflict))
			})
		})

		Context("when the gateway is unavailable", func() {
			It("should return 502", func() {
				service.initiateError = internal.NewGatewayError("Failed to initiate payment", nil)

				req := httptest.NewRequest(http.MethodPost, "/payments/42/initiate", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadGateway))
			})
		})

		Context("when the booking id is not numeric", func() {
			It("should return 400 without touching the service", func() {
				req := httptest.NewRequest(http.MethodPost, "/payments/abc/initiate", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("GET /payments/{bookingID}/verify", func() {
		Context("when verification completed the payment", func() {
			It("should return the completed status and message", func() {
				service.verifyResult = &paymentPkg.VerifyResult{
					Success: true,
					Status:  payment.StatusCompleted,
					Message: "Payment completed! Booking confirmation email is being sent.",
				}

				req := httptest.NewRequest(http.MethodGet, "/payments/42/verify", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))

				var body map[string]interface{}
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body["success"]).To(BeTrue())
				Expect(body["status"]).To(Equal(payment.StatusCompleted))
				Expect(body["message"]).To(ContainSubstring("confirmation email"))
			})
		})

		Context("when the payment has no gateway reference yet", func() {
			It("should return only a pending status", func() {
				service.verifyResult = &paymentPkg.VerifyResult{
					Status:  payment.StatusPending,
					Pending: true,
				}

				req := httptest.NewRequest(http.MethodGet, "/payments/42/verify", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))

				var body map[string]interface{}
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body).To(HaveLen(1))
				Expect(body["status"]).To(Equal(payment.StatusPending))
			})
		})

		Context("when no payment exists for the booking", func() {
			It("should return 404", func() {
				service.verifyError = internal.ErrPaymentNotFound

				req := httptest.NewRequest(http.MethodGet, "/payments/42/verify", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusNotFound))
			})
		})

		Context("when the gateway redirect uses POST", func() {
			It("should behave the same as GET", func() {
				service.verifyResult = &paymentPkg.VerifyResult{
					Success: false,
					Status:  payment.StatusFailed,
				}

				req := httptest.NewRequest(http.MethodPost, "/payments/42/verify", nil)
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)

				Expect(rec.Code).To(Equal(http.StatusOK))

				var body map[string]interface{}
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body["status"]).To(Equal(payment.StatusFailed))
			})
		})
	})

	Describe("GET /payments/{bookingID}/status", func() {
		It("should return the stored status without a gateway call", func() {
			service.statusResult = &paymentPkg.StatusResult{
				Status: payment.StatusCompleted,
				Amount: 255.00,
			}

			req := httptest.NewRequest(http.MethodGet, "/payments/42/status", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusOK))

			var body paymentPkg.StatusResult
			Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
			Expect(body.Status).To(Equal(payment.StatusCompleted))
			Expect(body.Amount).To(Equal(255.00))
		})

		It("should return 404 when no payment exists", func() {
			service.statusError = internal.ErrPaymentNotFound

			req := httptest.NewRequest(http.MethodGet, "/payments/42/status", nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})
	})
})
