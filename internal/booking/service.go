package booking

import (
	"log/slog"

	"github.com/alx-travel/travelbook/internal"
	"github.com/alx-travel/travelbook/internal/core/datamodel/booking"
	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
)

// Repository interface defines the data access methods for bookings
type Repository interface {
	Create(b *booking.Booking) error
	GetByID(id int64) (*booking.Booking, error)
	GetByUserID(userID int64, limit, offset int) ([]*booking.Booking, error)
}

// ListingReader gives the booking service read access to listings.
type ListingReader interface {
	GetByID(id int64) (*listing.Listing, error)
}

// Service handles booking business logic
type Service struct {
	repo     Repository
	listings ListingReader
	logger   *slog.Logger
}

func NewService(repo Repository, listings ListingReader, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		listings: listings,
		logger:   logger,
	}
}

// CreateBooking creates a booking in pending status. When the caller
// does not supply a total price it is derived from the listing's
// nightly rate.
func (s *Service) CreateBooking(dto CreateBookingDTO) (*booking.Booking, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("booking validation failed", "error", err, "user_id", dto.UserID)
		return nil, err
	}

	lst, err := s.listings.GetByID(dto.ListingID)
	if err != nil {
		s.logger.Error("listing not found for booking", "error", err, "listing_id", dto.ListingID)
		return nil, internal.ErrListingNotFound
	}

	if !lst.Available {
		s.logger.Warn("listing not available for booking", "listing_id", lst.ID)
		return nil, internal.ErrListingUnavailable
	}

	b := &booking.Booking{
		UserID:     dto.UserID,
		ListingID:  dto.ListingID,
		CheckIn:    dto.CheckIn,
		CheckOut:   dto.CheckOut,
		Guests:     dto.Guests,
		TotalPrice: dto.TotalPrice,
		Status:     booking.StatusPending,
		GuestEmail: dto.GuestEmail,
	}

	if b.Guests == 0 {
		b.Guests = 1
	}

	if b.TotalPrice == 0 {
		b.TotalPrice = float64(b.Nights()) * lst.PricePerNight
	}

	if err := s.repo.Create(b); err != nil {
		s.logger.Error("failed to create booking", "error", err, "user_id", dto.UserID)
		return nil, internal.NewInternalError("failed to create booking", err)
	}

	s.logger.Info("booking created",
		"booking_id", b.ID,
		"user_id", b.UserID,
		"listing_id", b.ListingID,
		"total_price", b.TotalPrice)

	return b, nil
}

// GetBookingByID retrieves a booking by ID
func (s *Service) GetBookingByID(id int64) (*booking.Booking, error) {
	b, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get booking", "error", err, "booking_id", id)
		return nil, internal.ErrBookingNotFound
	}
	return b, nil
}

// GetUserBookings retrieves bookings for a specific user
func (s *Service) GetUserBookings(userID int64, limit, offset int) ([]*booking.Booking, error) {
	if limit <= 0 {
		limit = 20
	}
	bookings, err := s.repo.GetByUserID(userID, limit, offset)
	if err != nil {
		s.logger.Error("failed to get user bookings", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get bookings", err)
	}
	return bookings, nil
}
