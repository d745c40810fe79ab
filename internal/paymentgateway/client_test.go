package paymentgateway_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	gatewaytypes "github.com/alx-travel/travelbook/internal/core/datamodel/paymentgateway"
	"github.com/alx-travel/travelbook/internal/paymentgateway"
)

func TestPaymentGateway(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Payment Gateway Suite")
}

var _ = Describe("Client", func() {
	var (
		client     *paymentgateway.Client
		mockServer *httptest.Server
		ctx        context.Context

		lastRequest *http.Request
		lastBody    map[string]interface{}
		respondWith func(w http.ResponseWriter)
	)

	validRequest := func() *gatewaytypes.InitializeRequest {
		return &gatewaytypes.InitializeRequest{
			Amount:    "255.00",
			Currency:  "ETB",
			Email:     "guest@example.com",
			FirstName: "Abebe",
			LastName:  "Kebede",
			TxRef:     "booking_42",
			ReturnURL: "https://example.com/return",
		}
	}

	BeforeEach(func() {
		ctx = context.Background()
		lastRequest = nil
		lastBody = nil
		respondWith = func(w http.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(gatewaytypes.InitializeResponse{
				Status: "success",
				Data: gatewaytypes.InitializeData{
					Reference:   "ref_abc",
					CheckoutURL: "https://pay/abc",
				},
			})
		}

		mockServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			lastRequest = r
			if r.Body != nil {
				json.NewDecoder(r.Body).Decode(&lastBody)
			}
			respondWith(w)
		}))

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client = paymentgateway.NewClient(paymentgateway.Config{
			BaseURL:   mockServer.URL,
			SecretKey: "CHASECK_TEST-secret",
			Timeout:   5 * time.Second,
		}, logger)
	})

	AfterEach(func() {
		mockServer.Close()
	})

	Describe("InitializeTransaction", func() {
		It("should POST the payload to the initialize endpoint", func() {
			resp, err := client.InitializeTransaction(ctx, validRequest())

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Data.Reference).To(Equal("ref_abc"))
			Expect(resp.Data.CheckoutURL).To(Equal("https://pay/abc"))

			Expect(lastRequest.Method).To(Equal(http.MethodPost))
			Expect(lastRequest.URL.Path).To(Equal("/transaction/initialize"))
			Expect(lastRequest.Header.Get("Content-Type")).To(Equal("application/json"))
		})

		It("should authenticate with the secret key as a bearer token", func() {
			_, err := client.InitializeTransaction(ctx, validRequest())

			Expect(err).ToNot(HaveOccurred())
			Expect(lastRequest.Header.Get("Authorization")).To(Equal("Bearer CHASECK_TEST-secret"))
		})

		It("should send the amount as a string with two decimals", func() {
			_, err := client.InitializeTransaction(ctx, validRequest())

			Expect(err).ToNot(HaveOccurred())
			Expect(lastBody["amount"]).To(Equal("255.00"))
			Expect(lastBody["currency"]).To(Equal("ETB"))
			Expect(lastBody["tx_ref"]).To(Equal("booking_42"))
			Expect(lastBody["return_url"]).To(Equal("https://example.com/return"))
		})

		It("should reject an incomplete request before any HTTP call", func() {
			req := validRequest()
			req.Email = ""

			resp, err := client.InitializeTransaction(ctx, req)

			Expect(resp).To(BeNil())
			Expect(err).To(MatchError(ContainSubstring("validation error")))
			Expect(lastRequest).To(BeNil())
		})

		It("should return an error carrying the gateway's status and body", func() {
			respondWith = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"message":"Invalid API Key"}`))
			}

			resp, err := client.InitializeTransaction(ctx, validRequest())

			Expect(resp).To(BeNil())
			Expect(err).To(MatchError(ContainSubstring("status 401")))
			Expect(err).To(MatchError(ContainSubstring("Invalid API Key")))
		})
	})

	Describe("VerifyTransaction", func() {
		BeforeEach(func() {
			respondWith = func(w http.ResponseWriter) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(gatewaytypes.VerifyResponse{
					Status: "success",
					Data:   gatewaytypes.VerifyData{Status: "success", ID: "txn_1"},
				})
			}
		})

		It("should GET the verify endpoint for the reference", func() {
			resp, err := client.VerifyTransaction(ctx, "ref_abc")

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Data.Status).To(Equal(gatewaytypes.TransactionStatusSuccess))
			Expect(resp.Data.ID).To(Equal("txn_1"))

			Expect(lastRequest.Method).To(Equal(http.MethodGet))
			Expect(lastRequest.URL.Path).To(Equal("/transaction/verify/ref_abc"))
			Expect(lastRequest.Header.Get("Authorization")).To(Equal("Bearer CHASECK_TEST-secret"))
		})

		It("should reject an empty reference before any HTTP call", func() {
			resp, err := client.VerifyTransaction(ctx, "")

			Expect(resp).To(BeNil())
			Expect(err).To(MatchError(ContainSubstring("reference is required")))
			Expect(lastRequest).To(BeNil())
		})

		It("should pass through the gateway's failed status", func() {
			respondWith = func(w http.ResponseWriter) {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(gatewaytypes.VerifyResponse{
					Status: "success",
					Data:   gatewaytypes.VerifyData{Status: "failed"},
				})
			}

			resp, err := client.VerifyTransaction(ctx, "ref_abc")

			Expect(err).ToNot(HaveOccurred())
			Expect(resp.Data.Status).To(Equal("failed"))
		})

		It("should return an error for a non-200 response", func() {
			respondWith = func(w http.ResponseWriter) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"message":"transaction not found"}`))
			}

			resp, err := client.VerifyTransaction(ctx, "ref_unknown")

			Expect(resp).To(BeNil())
			Expect(err).To(MatchError(ContainSubstring("status 404")))
		})
	})
})
