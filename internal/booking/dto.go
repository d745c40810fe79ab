package booking

import (
	"time"

	errors "github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/common/validation"
	"github.com/alx-travel/travelbook/internal/core/datamodel/booking"
)

type CreateBookingDTO struct {
	UserID     int64     `json:"user_id"`
	ListingID  int64     `json:"listing_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"total_price"`
	GuestEmail *string   `json:"guest_email,omitempty"`
}

func (d *CreateBookingDTO) Validate() error {
	validator := validation.NewValidator()

	validator.Field("user_id", d.UserID).Required()
	validator.Field("listing_id", d.ListingID).Required()
	validator.Field("check_in", d.CheckIn).Required()
	validator.Field("check_out", d.CheckOut).Required().After(d.CheckIn, errors.ErrCodeInvalidDateRange)
	// zero means not supplied; the service defaults it to one
	if d.Guests != 0 {
		validator.Field("guests", d.Guests).MinInt(1, errors.ErrCodeInvalidGuests)
	}
	validator.Field("total_price", d.TotalPrice).NonNegative(errors.ErrCodeInvalidAmount)

	if appErr := validator.Validate(); appErr != nil {
		return appErr
	}
	return nil
}

// BookingView is the JSON shape returned by booking endpoints.
type BookingView struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	ListingID  int64     `json:"listing_id"`
	CheckIn    time.Time `json:"check_in"`
	CheckOut   time.Time `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToView(b *booking.Booking) *BookingView {
	return &BookingView{
		ID:         b.ID,
		UserID:     b.UserID,
		ListingID:  b.ListingID,
		CheckIn:    b.CheckIn,
		CheckOut:   b.CheckOut,
		Guests:     b.Guests,
		TotalPrice: b.TotalPrice,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
	}
}
