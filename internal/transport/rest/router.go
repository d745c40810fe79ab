package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/alx-travel/travelbook/internal/booking"
	"github.com/alx-travel/travelbook/internal/listing"
	"github.com/alx-travel/travelbook/internal/payment"
	"github.com/alx-travel/travelbook/internal/transport/middleware"
	"github.com/alx-travel/travelbook/internal/transport/swagger"
)

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, listingHandler *listing.Handler, bookingHandler *booking.Handler, paymentHandler *payment.Handler, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check route
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if listingHandler != nil {
			r.Route("/listings", func(lr chi.Router) {
				lr.Get("/", listingHandler.ListListings)
				lr.Post("/", listingHandler.CreateListing)
				lr.Get("/{id}", listingHandler.GetListing)
			})
		}

		if bookingHandler != nil {
			r.Route("/bookings", func(br chi.Router) {
				br.Post("/", bookingHandler.CreateBooking)
				br.Get("/", bookingHandler.ListUserBookings)
				br.Get("/{id}", bookingHandler.GetBooking)
			})
		}

		if paymentHandler != nil {
			r.Route("/payments/{bookingID}", func(pr chi.Router) {
				pr.Post("/initiate", paymentHandler.Initiate)
				// verify is reachable both ways: the gateway redirects
				// the browser back with GET, API clients POST.
				pr.Get("/verify", paymentHandler.Verify)
				pr.Post("/verify", paymentHandler.Verify)
				pr.Get("/status", paymentHandler.Status)
			})
		}
	})
}
