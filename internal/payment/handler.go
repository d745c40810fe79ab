package payment

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/transport"
)

// ServiceAPI is the payment flow surface exposed to transport.
type ServiceAPI interface {
	Initiate(ctx context.Context, bookingID int64) (*InitiateResult, error)
	Verify(ctx context.Context, bookingID int64) (*VerifyResult, error)
	Status(ctx context.Context, bookingID int64) (*StatusResult, error)
}

type Handler struct {
	transport.BaseHandler
	Service ServiceAPI
	Logger  *slog.Logger
}

func NewHandler(service ServiceAPI, logger *slog.Logger) *Handler {
	return &Handler{
		BaseHandler: transport.BaseHandler{Logger: logger},
		Service:     service,
		Logger:      logger,
	}
}

// Initiate handles POST /payments/{bookingID}/initiate
func (h *Handler) Initiate(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	result, err := h.Service.Initiate(r.Context(), bookingID)
	if err != nil {
		h.Logger.Error("Initiate: service error", "error", err, "booking_id", bookingID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Verify handles GET|POST /payments/{bookingID}/verify
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	result, err := h.Service.Verify(r.Context(), bookingID)
	if err != nil {
		h.Logger.Error("Verify: service error", "error", err, "booking_id", bookingID)
		h.HandleServiceError(w, err)
		return
	}

	if result.Pending {
		h.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"status": result.Status,
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

// Status handles GET /payments/{bookingID}/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := h.bookingID(w, r)
	if !ok {
		return
	}

	result, err := h.Service.Status(r.Context(), bookingID)
	if err != nil {
		h.Logger.Error("Status: service error", "error", err, "booking_id", bookingID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "bookingID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Error("invalid booking ID", "booking_id", raw)
		h.HandleError(w, errors.NewValidationError("invalid booking ID", errors.ErrCodeValidationFailed))
		return 0, false
	}
	return id, true
}
