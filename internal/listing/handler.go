package listing

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	errors "github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
	"github.com/alx-travel/travelbook/internal/transport"
)

type ServiceAPI interface {
	CreateListing(dto CreateListingDTO) (*listing.Listing, error)
	GetListingByID(id int64) (*listing.Listing, error)
	GetListings(onlyAvailable bool, limit, offset int) ([]*listing.Listing, error)
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

// CreateListing handles POST /listings
func (h *Handler) CreateListing(w http.ResponseWriter, r *http.Request) {
	var dto CreateListingDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateListing: failed to parse request body", "error", err)
		h.HandleError(w, errors.NewValidationError("invalid request body", errors.ErrCodeValidationFailed))
		return
	}

	l, err := h.Service.CreateListing(dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, ToView(l))
}

// GetListing handles GET /listings/{id}
func (h *Handler) GetListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		h.HandleError(w, errors.NewValidationError("invalid listing ID", errors.ErrCodeValidationFailed))
		return
	}

	l, err := h.Service.GetListingByID(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ToView(l))
}

// ListListings handles GET /listings
func (h *Handler) ListListings(w http.ResponseWriter, r *http.Request) {
	onlyAvailable := r.URL.Query().Get("available") == "true"
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	listings, err := h.Service.GetListings(onlyAvailable, limit, offset)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	views := make([]*ListingView, 0, len(listings))
	for _, l := range listings {
		views = append(views, ToView(l))
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"listings": views,
		"count":    len(views),
	})
}
