package listing

import (
	"time"

	errors "github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/common/validation"
	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
)

type CreateListingDTO struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	PricePerNight float64 `json:"price_per_night"`
	Location      string  `json:"location"`
	Available     *bool   `json:"available,omitempty"`
}

func (d *CreateListingDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("title", d.Title).Required().MaxLength(200)
	validator.Field("location", d.Location).Required().MaxLength(200)
	validator.Field("price_per_night", d.PricePerNight).NonNegative(errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

type ListingView struct {
	ID            int64     `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	PricePerNight float64   `json:"price_per_night"`
	Location      string    `json:"location"`
	Available     bool      `json:"available"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToView(l *listing.Listing) *ListingView {
	return &ListingView{
		ID:            l.ID,
		Title:         l.Title,
		Description:   l.Description,
		PricePerNight: l.PricePerNight,
		Location:      l.Location,
		Available:     l.Available,
		CreatedAt:     l.CreatedAt,
	}
}
