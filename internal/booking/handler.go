package booking

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/datamodel/booking"
	"github.com/alx-travel/travelbook/internal/transport"
)

type ServiceAPI interface {
	CreateBooking(dto CreateBookingDTO) (*booking.Booking, error)
	GetBookingByID(id int64) (*booking.Booking, error)
	GetUserBookings(userID int64, limit, offset int) ([]*booking.Booking, error)
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

// CreateBooking handles POST /bookings
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var dto CreateBookingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateBooking: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	b, err := h.Service.CreateBooking(dto)
	if err != nil {
		h.Logger.Error("CreateBooking: service error", "error", err, "user_id", dto.UserID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToView(b))
}

// GetBooking handles GET /bookings/{id}
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.HandleError(w, errors.NewValidationError("invalid booking ID", errors.ErrCodeValidationFailed))
		return
	}

	b, err := h.Service.GetBookingByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToView(b))
}

// ListUserBookings handles GET /bookings?user_id=
func (h *Handler) ListUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil || userID <= 0 {
		h.HandleError(w, errors.NewValidationError("user_id query parameter is required", errors.ErrCodeValidationFailed))
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	bookings, err := h.Service.GetUserBookings(userID, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	views := make([]*BookingView, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, ToView(b))
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"bookings": views,
		"count":    len(views),
	})
}
