package booking

import (
	"time"

	"github.com/alx-travel/travelbook/internal/core/datamodel/listing"
	"github.com/alx-travel/travelbook/internal/core/datamodel/user"
)

const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

type Booking struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null"`
	ListingID  int64     `gorm:"column:listing_id;not null"`
	CheckIn    time.Time `gorm:"column:check_in;not null"`
	CheckOut   time.Time `gorm:"column:check_out;not null"`
	Guests     int       `gorm:"column:guests;default:1"`
	TotalPrice float64   `gorm:"column:total_price;not null"`
	Status     string    `gorm:"column:status;default:pending"`
	// GuestEmail is the fallback recipient for confirmation mail when
	// the booking user has no email on record.
	GuestEmail *string   `gorm:"column:guest_email"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`

	User    *user.User       `gorm:"foreignKey:UserID"`
	Listing *listing.Listing `gorm:"foreignKey:ListingID"`
}

func (Booking) TableName() string {
	return "bookings"
}

// Nights returns the length of stay in whole nights.
func (b *Booking) Nights() int {
	return int(b.CheckOut.Sub(b.CheckIn).Hours() / 24)
}
