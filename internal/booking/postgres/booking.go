package postgres

import (
	bookingpkg "github.com/alx-travel/travelbook/internal/booking"
	"github.com/alx-travel/travelbook/internal/core/datamodel/booking"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) bookingpkg.Repository {
	return &BookingRepository{
		db: db,
	}
}

func (r *BookingRepository) Create(b *booking.Booking) error {
	return r.db.Create(b).Error
}

func (r *BookingRepository) GetByID(id int64) (*booking.Booking, error) {
	var b booking.Booking
	err := r.db.Preload("User").Preload("Listing").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) GetByUserID(userID int64, limit, offset int) ([]*booking.Booking, error) {
	var bookings []*booking.Booking
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&bookings).Error
	return bookings, err
}
